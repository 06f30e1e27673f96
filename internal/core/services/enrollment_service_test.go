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

type EnrollmentServiceTestSuite struct {
	suite.Suite
	mockEnrollmentRepo *MockEnrollmentRepository
	mockProgramRepo    *MockProgramRepository
	mockStudentRepo    *MockStudentRepository
	mockAuthorizer     *MockProgramAuthorizer
	service            portssvc.EnrollmentSvcFacade
	program            domain.Program
	student            domain.Student
	creatorUserID      string
}

func (suite *EnrollmentServiceTestSuite) SetupTest() {
	suite.mockEnrollmentRepo = new(MockEnrollmentRepository)
	suite.mockProgramRepo = new(MockProgramRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.mockAuthorizer = new(MockProgramAuthorizer)
	suite.service = services.NewEnrollmentService(suite.mockEnrollmentRepo, suite.mockProgramRepo, suite.mockStudentRepo, suite.mockAuthorizer)

	suite.creatorUserID = uuid.NewString()
	programID := uuid.NewString()
	suite.program = domain.Program{
		ProgramID:    programID,
		Name:         "Go Bootcamp",
		TotalAmount:  decimal.NewFromInt(300000),
		CurrencyCode: "KZT",
		StartDate:    time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		TrancheRules: []domain.TrancheRule{
			{RuleID: uuid.NewString(), ProgramID: programID, Percent: decimal.NewFromInt(30), DueWeek: 0},
			{RuleID: uuid.NewString(), ProgramID: programID, Percent: decimal.NewFromInt(35), DueWeek: 4},
			{RuleID: uuid.NewString(), ProgramID: programID, Percent: decimal.NewFromInt(35), DueWeek: 8},
		},
	}
	suite.student = domain.Student{StudentID: uuid.NewString(), FullName: "Aruzhan T."}
}

func (suite *EnrollmentServiceTestSuite) TestCreateEnrollment_GeneratesPlannedTranches() {
	suite.mockAuthorizer.On("AuthorizeTeacherAction", mock.Anything, suite.creatorUserID, suite.program.ProgramID, domain.ProgramRoleAssistant).
		Return(nil).Once()
	suite.mockProgramRepo.On("FindProgramByID", mock.Anything, suite.program.ProgramID).
		Return(&suite.program, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.student.StudentID).
		Return(&suite.student, nil).Once()

	suite.mockEnrollmentRepo.On("SaveEnrollmentWithTranches", mock.Anything,
		mock.MatchedBy(func(e domain.Enrollment) bool {
			return e.StudentID == suite.student.StudentID &&
				e.ProgramID == suite.program.ProgramID &&
				e.TotalAmount.Equal(suite.program.TotalAmount) &&
				e.PaidAmount.IsZero() &&
				e.Status == domain.EnrollmentPending
		}),
		mock.MatchedBy(func(tranches []domain.Tranche) bool {
			if len(tranches) != 3 {
				return false
			}
			// 30/35/35 percent of 300000, due at weeks 0/4/8 from the start date
			return tranches[0].ExpectedAmount.Equal(decimal.NewFromInt(90000)) &&
				tranches[0].DueDate.Equal(suite.program.StartDate) &&
				tranches[1].ExpectedAmount.Equal(decimal.NewFromInt(105000)) &&
				tranches[1].DueDate.Equal(suite.program.StartDate.AddDate(0, 0, 28)) &&
				tranches[2].ExpectedAmount.Equal(decimal.NewFromInt(105000)) &&
				tranches[2].DueDate.Equal(suite.program.StartDate.AddDate(0, 0, 56)) &&
				tranches[0].ActualAmount == nil
		}),
	).Return(nil).Once()

	enrollment, tranches, err := suite.service.CreateEnrollment(context.Background(), suite.program.ProgramID,
		dto.CreateEnrollmentRequest{StudentID: suite.student.StudentID}, suite.creatorUserID)

	suite.NoError(err)
	suite.NotNil(enrollment)
	suite.Len(tranches, 3)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *EnrollmentServiceTestSuite) TestCreateEnrollment_NoRulesMeansNoTranches() {
	suite.program.TrancheRules = nil

	suite.mockAuthorizer.On("AuthorizeTeacherAction", mock.Anything, suite.creatorUserID, suite.program.ProgramID, domain.ProgramRoleAssistant).
		Return(nil).Once()
	suite.mockProgramRepo.On("FindProgramByID", mock.Anything, suite.program.ProgramID).
		Return(&suite.program, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.student.StudentID).
		Return(&suite.student, nil).Once()
	suite.mockEnrollmentRepo.On("SaveEnrollmentWithTranches", mock.Anything, mock.Anything,
		mock.MatchedBy(func(tranches []domain.Tranche) bool { return len(tranches) == 0 }),
	).Return(nil).Once()

	_, tranches, err := suite.service.CreateEnrollment(context.Background(), suite.program.ProgramID,
		dto.CreateEnrollmentRequest{StudentID: suite.student.StudentID}, suite.creatorUserID)

	suite.NoError(err)
	suite.Empty(tranches)
}

func (suite *EnrollmentServiceTestSuite) TestCreateEnrollment_DuplicateStudent() {
	suite.mockAuthorizer.On("AuthorizeTeacherAction", mock.Anything, suite.creatorUserID, suite.program.ProgramID, domain.ProgramRoleAssistant).
		Return(nil).Once()
	suite.mockProgramRepo.On("FindProgramByID", mock.Anything, suite.program.ProgramID).
		Return(&suite.program, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.student.StudentID).
		Return(&suite.student, nil).Once()
	suite.mockEnrollmentRepo.On("SaveEnrollmentWithTranches", mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()

	_, _, err := suite.service.CreateEnrollment(context.Background(), suite.program.ProgramID,
		dto.CreateEnrollmentRequest{StudentID: suite.student.StudentID}, suite.creatorUserID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *EnrollmentServiceTestSuite) TestGetEnrollmentByID_ReturnsTranches() {
	enrollmentID := uuid.NewString()
	enrollment := domain.Enrollment{
		EnrollmentID: enrollmentID,
		ProgramID:    suite.program.ProgramID,
		StudentID:    suite.student.StudentID,
		TotalAmount:  suite.program.TotalAmount,
		PaidAmount:   decimal.NewFromInt(90000),
		Status:       domain.EnrollmentPartial,
	}
	tranches := []domain.Tranche{{TrancheID: uuid.NewString(), EnrollmentID: enrollmentID}}

	suite.mockEnrollmentRepo.On("FindEnrollmentByID", mock.Anything, enrollmentID).
		Return(&enrollment, nil).Once()
	suite.mockAuthorizer.On("AuthorizeTeacherAction", mock.Anything, suite.creatorUserID, suite.program.ProgramID, domain.ProgramRoleAssistant).
		Return(nil).Once()
	suite.mockEnrollmentRepo.On("ListTranchesByEnrollment", mock.Anything, enrollmentID).
		Return(tranches, nil).Once()

	got, gotTranches, err := suite.service.GetEnrollmentByID(context.Background(), enrollmentID, suite.creatorUserID)

	suite.NoError(err)
	suite.Equal(enrollmentID, got.EnrollmentID)
	suite.Len(gotTranches, 1)
}

func (suite *EnrollmentServiceTestSuite) TestListEnrollmentsByProgram_PassesToken() {
	token := "opaque-page-token"
	next := "next-page-token"
	params := dto.ListEnrollmentsParams{Limit: 10, NextToken: &token}

	suite.mockAuthorizer.On("AuthorizeTeacherAction", mock.Anything, suite.creatorUserID, suite.program.ProgramID, domain.ProgramRoleAssistant).
		Return(nil).Once()
	suite.mockEnrollmentRepo.On("ListEnrollmentsByProgram", mock.Anything, suite.program.ProgramID, 10, &token).
		Return([]domain.Enrollment{{EnrollmentID: uuid.NewString()}}, next, nil).Once()

	enrollments, nextToken, err := suite.service.ListEnrollmentsByProgram(context.Background(), suite.program.ProgramID, params, suite.creatorUserID)

	suite.NoError(err)
	suite.Len(enrollments, 1)
	suite.NotNil(nextToken)
	suite.Equal(next, *nextToken)
}

func (suite *EnrollmentServiceTestSuite) TestListEnrollmentsByProgram_Forbidden() {
	suite.mockAuthorizer.On("AuthorizeTeacherAction", mock.Anything, suite.creatorUserID, suite.program.ProgramID, domain.ProgramRoleAssistant).
		Return(apperrors.ErrForbidden).Once()

	_, _, err := suite.service.ListEnrollmentsByProgram(context.Background(), suite.program.ProgramID, dto.ListEnrollmentsParams{Limit: 10}, suite.creatorUserID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "ListEnrollmentsByProgram")
}

func (suite *EnrollmentServiceTestSuite) TestListEnrollmentsByStudent() {
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.student.StudentID).
		Return(&suite.student, nil).Once()
	suite.mockEnrollmentRepo.On("ListEnrollmentsByStudent", mock.Anything, suite.student.StudentID).
		Return([]domain.Enrollment{
			{EnrollmentID: uuid.NewString(), StudentID: suite.student.StudentID, ProgramID: suite.program.ProgramID},
			{EnrollmentID: uuid.NewString(), StudentID: suite.student.StudentID, ProgramID: uuid.NewString()},
		}, nil).Once()

	enrollments, err := suite.service.ListEnrollmentsByStudent(context.Background(), suite.student.StudentID, suite.creatorUserID)

	suite.NoError(err)
	suite.Len(enrollments, 2)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *EnrollmentServiceTestSuite) TestListEnrollmentsByStudent_UnknownStudent() {
	studentID := uuid.NewString()
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, studentID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListEnrollmentsByStudent(context.Background(), studentID, suite.creatorUserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "ListEnrollmentsByStudent")
}

func TestEnrollmentService(t *testing.T) {
	suite.Run(t, new(EnrollmentServiceTestSuite))
}
