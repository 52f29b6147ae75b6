package receipt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wstore/pkg/catalog"
	"wstore/pkg/pricing"
	"wstore/pkg/promotion"
)

func TestMoney(t *testing.T) {
	f := NewFormatter("")
	tests := []struct {
		in   int
		want string
	}{
		{0, "0원"},
		{500, "500원"},
		{1000, "1,000원"},
		{64000, "64,000원"},
		{1234567, "1,234,567원"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Money(tt.in))
	}
}

func TestMoneyCustomUnit(t *testing.T) {
	assert.Equal(t, "12,500 KRW", NewFormatter(" KRW").Money(12500))
}

func TestRenderStock(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter("").RenderStock(&buf, []catalog.Product{
		{Name: "콜라", Price: 1000, Stock: 10, Promotion: "탄산2+1"},
		{Name: "물", Price: 500, Stock: 10},
		{Name: "컵라면", Price: 1700, Stock: 0, Promotion: "MD추천상품"},
		{Name: "정식도시락", Price: 6400, Stock: 0},
	})
	require.NoError(t, err)

	want := "- 콜라 1,000원 10개 탄산2+1\n" +
		"- 물 500원 10개\n" +
		"- 컵라면 1,700원 재고 없음\n" +
		"- 정식도시락 6,400원 재고 없음\n"
	assert.Equal(t, want, buf.String())
}

func TestRender(t *testing.T) {
	r := &pricing.Receipt{}
	lines := []pricing.Line{
		pricing.Quote("콜라", 1000, 3, promotion.BuyGetFree{Buy: 2, Get: 1}),
		pricing.Quote("에너지바", 2000, 5, nil),
	}
	r.Lines = lines
	r.Total = 2000 + 10000
	r.ApplyMembership(pricing.DefaultMembership())

	var buf bytes.Buffer
	require.NoError(t, NewFormatter("").Render(&buf, r))

	want := "=============W 편의점================\n" +
		"상품명\t\t수량\t금액\n" +
		"콜라\t\t3\t2,000원\n" +
		"에너지바\t\t5\t10,000원\n" +
		"============증\t정===============\n" +
		"콜라\t\t1\n" +
		"====================================\n" +
		"총구매액\t\t13,000원\n" +
		"행사할인\t\t-1,000원\n" +
		"멤버십할인\t\t-2,400원\n" +
		"내실돈\t\t 9,600원\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderEmptyReceipt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter("").Render(&buf, &pricing.Receipt{}))
	assert.Contains(t, buf.String(), "총구매액\t\t0원\n")
	assert.Contains(t, buf.String(), "멤버십할인\t\t-0원\n")
	assert.Contains(t, buf.String(), "내실돈\t\t 0원\n")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderPropagatesWriteError(t *testing.T) {
	assert.Error(t, NewFormatter("").Render(failingWriter{}, &pricing.Receipt{}))
}
