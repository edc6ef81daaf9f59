package indicators

import "testing"

func TestCorrelation(t *testing.T) {
	rising := risingSeries(30, 100, 1)
	falling := risingSeries(30, 200, -1)

	t.Run("identical movement", func(t *testing.T) {
		assertClose(t, "corr", Correlation(rising, rising, 30), 1.0, 1e-9)
	})

	t.Run("inverted movement", func(t *testing.T) {
		assertClose(t, "corr", Correlation(rising, falling, 30), -1.0, 1e-9)
	})

	t.Run("short input is zero", func(t *testing.T) {
		assertClose(t, "corr", Correlation(rising[:10], falling, 30), 0, 1e-12)
	})

	t.Run("constant series is zero", func(t *testing.T) {
		assertClose(t, "corr", Correlation(flatSeries(30, 5), rising, 30), 0, 1e-12)
	})

	t.Run("tails are aligned before windowing", func(t *testing.T) {
		longer := risingSeries(50, 0, 1)
		assertClose(t, "corr", Correlation(longer, rising, 30), 1.0, 1e-9)
	})
}
