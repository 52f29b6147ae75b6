package session

import (
	"errors"
	"fmt"

	"wstore/pkg/inventory"
	"wstore/pkg/order"
	"wstore/pkg/pricing"
)

const (
	msgGreeting       = "안녕하세요. W편의점입니다."
	msgStockHeader    = "현재 보유하고 있는 상품입니다."
	msgOrderPrompt    = "구매하실 상품명과 수량을 입력해 주세요."
	msgMembership     = "멤버십 할인을 받으시겠습니까? (Y/N)"
	msgContinue       = "감사합니다. 구매하고 싶은 다른 상품이 있나요? (Y/N)"
	msgFarewell       = "감사합니다. 이용해 주셔서 감사합니다."
	msgMalformed      = "[ERROR] 잘못된 형식의 입력입니다."
	msgInsufficient   = "[ERROR] 재고 수량을 초과하여 구매할 수 없습니다. 다시 입력해 주세요."
	unavailableFormat = "[ERROR] \"%s\" 상품이 존재하지 않거나 재고가 부족합니다."
)

// operatorMessage maps a rejected token or request to what the operator sees.
func operatorMessage(err error) string {
	switch {
	case order.IsValidation(err):
		return msgMalformed
	case errors.Is(err, inventory.ErrInsufficientStock):
		return msgInsufficient
	case errors.Is(err, inventory.ErrUnavailable):
		var reqErr *pricing.RequestError
		if errors.As(err, &reqErr) {
			return fmt.Sprintf(unavailableFormat, reqErr.Request.Name)
		}
		return fmt.Sprintf(unavailableFormat, "")
	default:
		return "[ERROR] " + err.Error()
	}
}
