package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SeriesPrimitivesTestSuite struct {
	suite.Suite
}

func TestSeriesPrimitivesSuite(t *testing.T) {
	suite.Run(t, new(SeriesPrimitivesTestSuite))
}

func (suite *SeriesPrimitivesTestSuite) TestRollingMeanWindowOneIsIdentity() {
	values := []float64{3.5, 1.25, -2, 100, 0.001}
	suite.Equal(values, rollingMean(values, 1))

	// 0.1+0.2-0.1 != 0.2 in binary floating point, so these inputs catch
	// any add-then-subtract running-sum shortcut.
	decimals := []float64{0.1, 0.2, 0.3}
	suite.Equal(decimals, rollingMean(decimals, 1))
}

func (suite *SeriesPrimitivesTestSuite) TestRollingMeanGrowThenSlide() {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	got := rollingMean(values, 3)

	suite.InDelta(1.0, got[0], 1e-12) // only 1 point available
	suite.InDelta(1.5, got[1], 1e-12) // mean of 1,2
	suite.InDelta(2.0, got[2], 1e-12) // window filled: mean of 1,2,3
	suite.InDelta(8.0, got[9], 1e-12) // mean of 8,9,10
}

func (suite *SeriesPrimitivesTestSuite) TestRollingMeanEmpty() {
	suite.Empty(rollingMean(nil, 5))
}

func (suite *SeriesPrimitivesTestSuite) TestRollingMeanWindowLargerThanSeries() {
	got := rollingMean([]float64{2, 4}, 200)
	suite.InDelta(2.0, got[0], 1e-12)
	suite.InDelta(3.0, got[1], 1e-12)
}

func (suite *SeriesPrimitivesTestSuite) TestEWMAConstantSeriesIsFixedPoint() {
	values := []float64{7, 7, 7, 7, 7, 7}
	got := ewma(values, 20)

	for i, v := range got {
		suite.InDelta(7.0, v, 1e-12, "index %d", i)
	}
}

func (suite *SeriesPrimitivesTestSuite) TestEWMASeedAndRecursion() {
	// alpha = 2/(3+1) = 0.5
	got := ewma([]float64{2, 4, 4}, 3)
	suite.InDelta(2.0, got[0], 1e-12)
	suite.InDelta(3.0, got[1], 1e-12)
	suite.InDelta(3.5, got[2], 1e-12)
}

func (suite *SeriesPrimitivesTestSuite) TestEWMALeadingNaNMovesSeed() {
	got := ewma([]float64{math.NaN(), 2, 4}, 3)
	suite.True(math.IsNaN(got[0]))
	suite.InDelta(2.0, got[1], 1e-12)
	suite.InDelta(3.0, got[2], 1e-12)
}

func (suite *SeriesPrimitivesTestSuite) TestEWMAEmpty() {
	suite.Empty(ewma(nil, 14))
}

func (suite *SeriesPrimitivesTestSuite) TestNanSlice() {
	out := nanSlice(3)
	suite.Len(out, 3)

	for _, v := range out {
		suite.True(math.IsNaN(v))
	}
}
