package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	"github.com/codinglive/codinglive_app/internal/core/domain"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/core/services"
	"github.com/codinglive/codinglive_app/internal/dto"
)

type ProgramServiceTestSuite struct {
	suite.Suite
	mockProgramRepo  *MockProgramRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.ProgramSvcFacade
	creatorUserID    string
}

func (suite *ProgramServiceTestSuite) SetupTest() {
	suite.mockProgramRepo = new(MockProgramRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewProgramService(suite.mockProgramRepo, suite.mockCurrencyRepo, suite.mockUserRepo)
	suite.creatorUserID = uuid.NewString()
}

func (suite *ProgramServiceTestSuite) validCreateRequest() dto.CreateProgramRequest {
	return dto.CreateProgramRequest{
		Name:         "Go Bootcamp",
		Description:  "Twelve weeks of backend Go",
		TotalAmount:  decimal.NewFromInt(300000),
		CurrencyCode: "KZT",
		StartDate:    time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		TrancheRules: []dto.TrancheRuleRequest{
			{Percent: decimal.NewFromInt(30), DueWeek: 0},
			{Percent: decimal.NewFromInt(70), DueWeek: 4},
		},
	}
}

func (suite *ProgramServiceTestSuite) TestCreateProgram_StaffsCreatorAsOwner() {
	req := suite.validCreateRequest()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "KZT").
		Return(&domain.Currency{CurrencyCode: "KZT", Symbol: "₸", Name: "Kazakhstani Tenge"}, nil).Once()
	suite.mockProgramRepo.On("SaveProgram", mock.Anything,
		mock.MatchedBy(func(p domain.Program) bool {
			return p.Name == req.Name &&
				p.TotalAmount.Equal(req.TotalAmount) &&
				len(p.TrancheRules) == 2 &&
				p.TrancheRules[1].Percent.Equal(decimal.NewFromInt(70)) &&
				p.TrancheRules[1].DueWeek == 4
		}),
	).Return(nil).Once()
	suite.mockProgramRepo.On("AddTeacherToProgram", mock.Anything,
		mock.MatchedBy(func(staffing domain.ProgramTeacher) bool {
			return staffing.UserID == suite.creatorUserID && staffing.Role == domain.ProgramRoleOwner
		}),
	).Return(nil).Once()

	program, err := suite.service.CreateProgram(context.Background(), req, suite.creatorUserID)

	suite.NoError(err)
	suite.NotEmpty(program.ProgramID)
	suite.mockProgramRepo.AssertExpectations(suite.T())
}

func (suite *ProgramServiceTestSuite) TestCreateProgram_RejectsNonPositiveTotal() {
	req := suite.validCreateRequest()
	req.TotalAmount = decimal.Zero

	_, err := suite.service.CreateProgram(context.Background(), req, suite.creatorUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProgramRepo.AssertNotCalled(suite.T(), "SaveProgram")
}

func (suite *ProgramServiceTestSuite) TestCreateProgram_RejectsBadRulePercents() {
	badRules := [][]dto.TrancheRuleRequest{
		{{Percent: decimal.Zero, DueWeek: 0}},
		{{Percent: decimal.NewFromInt(101), DueWeek: 0}},
		{{Percent: decimal.NewFromInt(50), DueWeek: -1}},
		{{Percent: decimal.NewFromInt(60), DueWeek: 0}, {Percent: decimal.NewFromInt(50), DueWeek: 2}},
	}

	for _, rules := range badRules {
		req := suite.validCreateRequest()
		req.TrancheRules = rules

		_, err := suite.service.CreateProgram(context.Background(), req, suite.creatorUserID)

		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockProgramRepo.AssertNotCalled(suite.T(), "SaveProgram")
}

func (suite *ProgramServiceTestSuite) TestCreateProgram_UnknownCurrencyIsValidationError() {
	req := suite.validCreateRequest()
	req.CurrencyCode = "XXX"

	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "XXX").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateProgram(context.Background(), req, suite.creatorUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProgramServiceTestSuite) TestUpdateProgram_RequiresOwnerRole() {
	programID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.creatorUserID).
		Return(&domain.User{UserID: suite.creatorUserID, Role: domain.RoleTeacher}, nil).Once()
	suite.mockProgramRepo.On("FindProgramTeacherRole", mock.Anything, suite.creatorUserID, programID).
		Return(&domain.ProgramTeacher{UserID: suite.creatorUserID, ProgramID: programID, Role: domain.ProgramRoleAssistant}, nil).Once()

	_, err := suite.service.UpdateProgram(context.Background(), programID, dto.UpdateProgramRequest{Name: stringPtr("Renamed")}, suite.creatorUserID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockProgramRepo.AssertNotCalled(suite.T(), "UpdateProgram")
}

func (suite *ProgramServiceTestSuite) TestUpdateProgram_KeepsTotalAndSchedule() {
	programID := uuid.NewString()
	existing := domain.Program{
		ProgramID:    programID,
		Name:         "Go Bootcamp",
		TotalAmount:  decimal.NewFromInt(300000),
		CurrencyCode: "KZT",
		TrancheRules: []domain.TrancheRule{{RuleID: uuid.NewString(), ProgramID: programID, Percent: decimal.NewFromInt(100), DueWeek: 0}},
	}

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.creatorUserID).
		Return(&domain.User{UserID: suite.creatorUserID, Role: domain.RoleTeacher}, nil).Once()
	suite.mockProgramRepo.On("FindProgramTeacherRole", mock.Anything, suite.creatorUserID, programID).
		Return(&domain.ProgramTeacher{UserID: suite.creatorUserID, ProgramID: programID, Role: domain.ProgramRoleOwner}, nil).Once()
	suite.mockProgramRepo.On("FindProgramByID", mock.Anything, programID).
		Return(&existing, nil).Once()
	suite.mockProgramRepo.On("UpdateProgram", mock.Anything,
		mock.MatchedBy(func(p domain.Program) bool {
			return p.Name == "Renamed" &&
				p.TotalAmount.Equal(decimal.NewFromInt(300000)) &&
				len(p.TrancheRules) == 1
		}),
	).Return(nil).Once()

	updated, err := suite.service.UpdateProgram(context.Background(), programID, dto.UpdateProgramRequest{Name: stringPtr("Renamed")}, suite.creatorUserID)

	suite.NoError(err)
	suite.Equal("Renamed", updated.Name)
	suite.Equal(suite.creatorUserID, updated.LastUpdatedBy)
}

func (suite *ProgramServiceTestSuite) TestAddTeacherToProgram_OnlyOwnerMayStaff() {
	programID := uuid.NewString()
	targetUserID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.creatorUserID).
		Return(&domain.User{UserID: suite.creatorUserID, Role: domain.RoleTeacher}, nil).Once()
	suite.mockProgramRepo.On("FindProgramTeacherRole", mock.Anything, suite.creatorUserID, programID).
		Return(&domain.ProgramTeacher{Role: domain.ProgramRoleAssistant}, nil).Once()

	err := suite.service.AddTeacherToProgram(context.Background(), suite.creatorUserID, targetUserID, programID, domain.ProgramRoleAssistant)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockProgramRepo.AssertNotCalled(suite.T(), "AddTeacherToProgram")
}

func (suite *ProgramServiceTestSuite) TestAuthorizeTeacherAction_AdminBypassesStaffing() {
	programID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.creatorUserID).
		Return(&domain.User{UserID: suite.creatorUserID, Role: domain.RoleAdmin}, nil).Once()

	err := suite.service.AuthorizeTeacherAction(context.Background(), suite.creatorUserID, programID, domain.ProgramRoleOwner)

	suite.NoError(err)
	suite.mockProgramRepo.AssertNotCalled(suite.T(), "FindProgramTeacherRole")
}

func (suite *ProgramServiceTestSuite) TestAuthorizeTeacherAction_NotStaffedIsForbidden() {
	programID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.creatorUserID).
		Return(&domain.User{UserID: suite.creatorUserID, Role: domain.RoleTeacher}, nil).Once()
	suite.mockProgramRepo.On("FindProgramTeacherRole", mock.Anything, suite.creatorUserID, programID).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeTeacherAction(context.Background(), suite.creatorUserID, programID, domain.ProgramRoleAssistant)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ProgramServiceTestSuite) TestAuthorizeTeacherAction_AssistantSatisfiedByAnyStaffing() {
	programID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.creatorUserID).
		Return(&domain.User{UserID: suite.creatorUserID, Role: domain.RoleTeacher}, nil).Once()
	suite.mockProgramRepo.On("FindProgramTeacherRole", mock.Anything, suite.creatorUserID, programID).
		Return(&domain.ProgramTeacher{Role: domain.ProgramRoleOwner}, nil).Once()

	err := suite.service.AuthorizeTeacherAction(context.Background(), suite.creatorUserID, programID, domain.ProgramRoleAssistant)

	suite.NoError(err)
}

func TestProgramService(t *testing.T) {
	suite.Run(t, new(ProgramServiceTestSuite))
}
