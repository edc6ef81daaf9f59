package orderbook

import (
	"math"
	"testing"

	"CryptoSignalBot/internal/models"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", label, got, want, tol)
	}
}

func TestDensity(t *testing.T) {
	book := models.OrderBook{
		Bids: []models.PriceLevel{{Price: 99.9, Quantity: 10}, {Price: 99.0, Quantity: 5}},
		Asks: []models.PriceLevel{{Price: 100.05, Quantity: 2}, {Price: 101.5, Quantity: 1}},
	}

	res := Density(book, 100, 50)
	assertClose(t, "nearest bid", res.NearestBid, 99.9, 1e-12)
	assertClose(t, "nearest ask", res.NearestAsk, 100.05, 1e-12)
	// Only 99.9 and 100.05 sit inside the +/-0.5% zone.
	assertClose(t, "density score", res.DensityScore, 99.9*10+100.05*2, 1e-9)

	t.Run("empty book", func(t *testing.T) {
		res := Density(models.OrderBook{}, 100, 50)
		if res.NearestBid != 0 || res.NearestAsk != 0 || res.DensityScore != 0 {
			t.Errorf("expected empty analysis, got %+v", res)
		}
	})

	t.Run("zero price", func(t *testing.T) {
		res := Density(book, 0, 50)
		if res.DensityScore != 0 {
			t.Errorf("expected empty analysis, got %+v", res)
		}
	})
}

func TestPriceImpact(t *testing.T) {
	t.Run("buy walks the asks with partial fill", func(t *testing.T) {
		book := models.OrderBook{
			Asks: []models.PriceLevel{{Price: 100, Quantity: 1}, {Price: 110, Quantity: 10}},
		}
		// 100 quote fills level one, the next 100 buys 100/110 units at 110.
		got := PriceImpact(book, 200, SideBuy)
		avg := 200.0 / (1.0 + 100.0/110.0)
		want := math.Abs(avg-100) / 100 * 100
		assertClose(t, "impact", got, want, 1e-9)
	})

	t.Run("sell walks the bids", func(t *testing.T) {
		book := models.OrderBook{
			Bids: []models.PriceLevel{{Price: 100, Quantity: 1}, {Price: 90, Quantity: 10}},
		}
		got := PriceImpact(book, 190, SideSell)
		// One unit at 100 plus one unit at 90, average 95.
		assertClose(t, "impact", got, 5.0, 1e-9)
	})

	t.Run("empty book is zero", func(t *testing.T) {
		assertClose(t, "impact", PriceImpact(models.OrderBook{}, 1000, SideBuy), 0, 1e-12)
	})

	t.Run("small order inside the top level has no impact", func(t *testing.T) {
		book := models.OrderBook{
			Asks: []models.PriceLevel{{Price: 100, Quantity: 100}},
		}
		assertClose(t, "impact", PriceImpact(book, 500, SideBuy), 0, 1e-12)
	})
}
