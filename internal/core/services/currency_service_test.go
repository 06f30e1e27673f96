package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/core/services"
	"github.com/codinglive/codinglive_app/internal/dto"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.CurrencySvcFacade
	creatorUserID    string
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.creatorUserID = uuid.NewString()
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency() {
	req := dto.CreateCurrencyRequest{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0}

	suite.mockCurrencyRepo.On("SaveCurrency", mock.Anything,
		mock.MatchedBy(func(c domain.Currency) bool {
			return c.CurrencyCode == "JPY" &&
				c.Symbol == "¥" &&
				c.Precision == 0 &&
				c.CreatedBy == suite.creatorUserID
		}),
	).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(context.Background(), req, suite.creatorUserID)

	suite.NoError(err)
	suite.Equal("JPY", currency.CurrencyCode)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Duplicate() {
	req := dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2}

	suite.mockCurrencyRepo.On("SaveCurrency", mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateCurrency(context.Background(), req, suite.creatorUserID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "XXX").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCurrencyByCode(context.Background(), "XXX")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_EmptyIsNotNil() {
	suite.mockCurrencyRepo.On("FindCurrencies", mock.Anything).
		Return([]domain.Currency{}, nil).Once()

	currencies, err := suite.service.ListCurrencies(context.Background())

	suite.NoError(err)
	suite.NotNil(currencies)
	suite.Empty(currencies)
}

func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
