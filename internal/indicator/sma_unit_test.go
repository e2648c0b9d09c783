package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
)

type SMAUnitTestSuite struct {
	suite.Suite
}

func TestSMAUnitSuite(t *testing.T) {
	suite.Run(t, new(SMAUnitTestSuite))
}

func (suite *SMAUnitTestSuite) TestNewSMA() {
	sma := NewSMA(types.IndicatorTypeSMA20, 20)
	suite.NotNil(sma)
	suite.Equal(types.IndicatorTypeSMA20, sma.Name())

	// Cast to *SMA to check configuration
	smaImpl := sma.(*SMA)
	suite.Equal(20, smaImpl.window)
}

func (suite *SMAUnitTestSuite) TestConfigValid() {
	sma := NewSMA(types.IndicatorTypeSMA50, 50)
	smaImpl := sma.(*SMA)

	err := sma.Config(10)
	suite.NoError(err)
	suite.Equal(10, smaImpl.window)
}

func (suite *SMAUnitTestSuite) TestConfigWithFloat64() {
	sma := NewSMA(types.IndicatorTypeSMA50, 50)
	smaImpl := sma.(*SMA)

	// SMA supports float64 conversion
	err := sma.Config(15.0)
	suite.NoError(err)
	suite.Equal(15, smaImpl.window)
}

func (suite *SMAUnitTestSuite) TestConfigInvalidParamCount() {
	sma := NewSMA(types.IndicatorTypeSMA20, 20)

	err := sma.Config()
	suite.Error(err)
	suite.Contains(err.Error(), "expects 1 parameter")
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	err = sma.Config(10, 20)
	suite.Error(err)
}

func (suite *SMAUnitTestSuite) TestConfigInvalidWindowType() {
	sma := NewSMA(types.IndicatorTypeSMA20, 20)
	err := sma.Config("invalid")
	suite.Error(err)
	suite.Contains(err.Error(), "invalid type for window")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))
}

func (suite *SMAUnitTestSuite) TestConfigInvalidWindowValue() {
	sma := NewSMA(types.IndicatorTypeSMA20, 20)

	err := sma.Config(0)
	suite.Error(err)
	suite.Contains(err.Error(), "must be a positive integer")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	err = sma.Config(-5)
	suite.Error(err)
}

func (suite *SMAUnitTestSuite) TestComputeSingleOutput() {
	sma := NewSMA(types.IndicatorTypeSMA20, 20)
	out := sma.Compute([]float64{10, 10, 10, 10, 10})

	suite.Len(out, 1)
	values := out[types.IndicatorTypeSMA20]
	suite.Equal([]float64{10, 10, 10, 10, 10}, values)
}

func (suite *SMAUnitTestSuite) TestComputeEmpty() {
	sma := NewSMA(types.IndicatorTypeSMA200, 200)
	out := sma.Compute(nil)
	suite.Empty(out[types.IndicatorTypeSMA200])
}
