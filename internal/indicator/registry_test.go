package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quantlens/quantlens/internal/types"
	"github.com/quantlens/quantlens/pkg/errors"
)

type RegistryTestSuite struct {
	suite.Suite
	registry Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) SetupTest() {
	suite.registry = NewRegistry()
}

func (suite *RegistryTestSuite) TestRegisterAndGet() {
	err := suite.registry.Register(NewRSI())
	suite.NoError(err)

	ind, err := suite.registry.Get(types.IndicatorTypeRSI14)
	suite.NoError(err)
	suite.Equal(types.IndicatorTypeRSI14, ind.Name())
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	suite.NoError(suite.registry.Register(NewRSI()))

	err := suite.registry.Register(NewRSI())
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
}

func (suite *RegistryTestSuite) TestGetMissing() {
	_, err := suite.registry.Get(types.IndicatorTypeMACD)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestList() {
	suite.NoError(suite.registry.Register(NewRSI()))
	suite.NoError(suite.registry.Register(NewMACD()))

	names := suite.registry.List()
	suite.Len(names, 2)
	suite.Contains(names, types.IndicatorTypeRSI14)
	suite.Contains(names, types.IndicatorTypeMACD)
}

func (suite *RegistryTestSuite) TestRemove() {
	suite.NoError(suite.registry.Register(NewMACD()))
	suite.NoError(suite.registry.Remove(types.IndicatorTypeMACD))

	_, err := suite.registry.Get(types.IndicatorTypeMACD)
	suite.Error(err)

	err = suite.registry.Remove(types.IndicatorTypeMACD)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}
