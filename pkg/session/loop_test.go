package session

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wstore/pkg/catalog"
	"wstore/pkg/console"
	"wstore/pkg/inventory"
	"wstore/pkg/pricing"
	"wstore/pkg/promotion"
)

var fixedNow = time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	stock *inventory.Service
	out   *bytes.Buffer
	loop  *Loop
}

func newHarness(t *testing.T, products []catalog.Product, input string) harness {
	t.Helper()
	stock := inventory.NewService(catalog.EnsureExhaustedVariants(products))
	t.Cleanup(stock.Close)

	registry := promotion.NewRegistry([]promotion.Promotion{{
		Name:  "탄산2+1",
		Buy:   2,
		Get:   1,
		Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		Kind:  promotion.BuyGetFree{Buy: 2, Get: 1},
	}, {
		Name:  "MD추천상품",
		Buy:   1,
		Get:   1,
		Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		Kind:  promotion.PercentageOff{Rate: decimal.New(10, -2)},
	}})

	logger := zaptest.NewLogger(t)
	out := &bytes.Buffer{}
	loop := NewLoop(Dependencies{
		Stock:      stock,
		Engine:     pricing.NewEngine(stock, registry, logger),
		Console:    console.New(strings.NewReader(input), out),
		Membership: pricing.DefaultMembership(),
		Clock:      func() time.Time { return fixedNow },
		Logger:     logger,
	})
	return harness{stock: stock, out: out, loop: loop}
}

func (h harness) stockOf(t *testing.T, name string) int {
	t.Helper()
	products, err := h.stock.List(context.Background())
	require.NoError(t, err)
	total := 0
	for _, p := range products {
		if p.Name == name {
			total += p.Stock
		}
	}
	return total
}

func TestRunSingleSessionWithMembership(t *testing.T) {
	h := newHarness(t, []catalog.Product{{Name: "콜라", Price: 1000, Stock: 10, Promotion: "탄산2+1"}},
		"[콜라-6]\nY\nN\n")

	require.NoError(t, h.loop.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "안녕하세요. W편의점입니다.\n현재 보유하고 있는 상품입니다.\n\n- 콜라 1,000원 10개 탄산2+1\n- 콜라 1,000원 재고 없음\n\n")
	assert.Contains(t, out, "콜라\t\t6\t4,000원\n")
	assert.Contains(t, out, "============증\t정===============\n콜라\t\t2\n")
	assert.Contains(t, out, "총구매액\t\t6,000원\n")
	assert.Contains(t, out, "행사할인\t\t-2,000원\n")
	assert.Contains(t, out, "멤버십할인\t\t-800원\n")
	assert.Contains(t, out, "내실돈\t\t 3,200원\n")
	assert.True(t, strings.HasSuffix(out, msgFarewell+"\n"))
	assert.Equal(t, 4, h.stockOf(t, "콜라"))
}

func TestRunMembershipAcceptsOnlyY(t *testing.T) {
	h := newHarness(t, []catalog.Product{{Name: "물", Price: 500, Stock: 10}}, "[물-2]\nyes\nn\n")

	require.NoError(t, h.loop.Run(context.Background()))
	assert.Contains(t, h.out.String(), "멤버십할인\t\t-0원\n")
	assert.Contains(t, h.out.String(), "내실돈\t\t 1,000원\n")
}

func TestRunStockPersistsAcrossSessions(t *testing.T) {
	h := newHarness(t, []catalog.Product{{Name: "물", Price: 500, Stock: 5}},
		"[물-3]\nN\nY\n[물-3]\nmaybe\n[물-2]\nn\nN\n")

	require.NoError(t, h.loop.Run(context.Background()))

	out := h.out.String()
	assert.Equal(t, 3, strings.Count(out, msgGreeting))
	assert.Contains(t, out, "- 물 500원 2개\n")
	assert.Contains(t, out, msgInsufficient)
	assert.Equal(t, 0, h.stockOf(t, "물"))
	assert.Contains(t, out, "- 물 500원 재고 없음\n")
}

func TestRunReportsEveryBadTokenAndKeepsGoodOnes(t *testing.T) {
	h := newHarness(t, []catalog.Product{
		{Name: "콜라", Price: 1000, Stock: 10, Promotion: "탄산2+1"},
		{Name: "물", Price: 500, Stock: 10},
	}, "cola-5,[물-2],[사이다-1],[콜라-x]\nN\nN\n")

	require.NoError(t, h.loop.Run(context.Background()))

	out := h.out.String()
	assert.Equal(t, 2, strings.Count(out, msgMalformed))
	assert.Contains(t, out, `[ERROR] "사이다" 상품이 존재하지 않거나 재고가 부족합니다.`)
	assert.Contains(t, out, "물\t\t2\t1,000원\n")
	assert.Equal(t, 8, h.stockOf(t, "물"))
	assert.Equal(t, 10, h.stockOf(t, "콜라"))
}

func TestRunOversizedQuantityExceedsStock(t *testing.T) {
	h := newHarness(t, []catalog.Product{{Name: "물", Price: 500, Stock: 10}}, "[물-99999999999999999999]\nN\n")

	require.NoError(t, h.loop.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, msgInsufficient)
	assert.NotContains(t, out, msgMalformed)
	assert.Equal(t, 10, h.stockOf(t, "물"))
}

func TestRunNoAcceptedLinesSkipsMembershipPrompt(t *testing.T) {
	h := newHarness(t, []catalog.Product{{Name: "콜라", Price: 1000, Stock: 0, Promotion: "탄산2+1"}}, "[콜라-3]\nN\n")

	require.NoError(t, h.loop.Run(context.Background()))

	out := h.out.String()
	assert.NotContains(t, out, msgMembership)
	assert.Contains(t, out, `[ERROR] "콜라" 상품이 존재하지 않거나 재고가 부족합니다.`)
	assert.Contains(t, out, "내실돈\t\t 0원\n")
}

func TestRunQuitAtOrderPrompt(t *testing.T) {
	h := newHarness(t, []catalog.Product{{Name: "물", Price: 500, Stock: 1}}, "n\n")

	require.NoError(t, h.loop.Run(context.Background()))
	assert.True(t, strings.HasSuffix(h.out.String(), msgOrderPrompt+"\n"+msgFarewell+"\n"))
	assert.NotContains(t, h.out.String(), "W 편의점====")
}

func TestRunEndOfInputTerminates(t *testing.T) {
	h := newHarness(t, []catalog.Product{{Name: "물", Price: 500, Stock: 3}}, "[물-1]\n")

	require.NoError(t, h.loop.Run(context.Background()))
	assert.Equal(t, 2, h.stockOf(t, "물"))
	assert.NotContains(t, h.out.String(), msgFarewell)
}

func TestRunCanceledContext(t *testing.T) {
	h := newHarness(t, []catalog.Product{{Name: "물", Price: 500, Stock: 3}}, "[물-1]\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, h.loop.Run(ctx), context.Canceled)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting-order", AwaitingOrder.String())
	assert.Equal(t, "awaiting-membership-choice", AwaitingMembershipChoice.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "unknown", State(42).String())
}
