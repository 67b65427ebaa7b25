package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	contractModel "devluck_backend/internals/features/contracts/model"
	"devluck_backend/internals/features/disputes/dto"
	"devluck_backend/internals/features/disputes/model"
	notifDTO "devluck_backend/internals/features/notifications/dto"
	notifModel "devluck_backend/internals/features/notifications/model"
)

type captureEmitter struct {
	inputs []notifDTO.CreateNotificationInput
}

func (e *captureEmitter) Enqueue(input notifDTO.CreateNotificationInput) {
	e.inputs = append(e.inputs, input)
}

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	return db, mock, sqlDB
}

func contractRows(contractID, companyID, studentID uuid.UUID, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"contract_id", "contract_title", "contract_number",
		"contract_status", "contract_company_id", "contract_student_id",
	}).AddRow(contractID, "Backend Internship", "CTR-001", status, companyID, studentID)
}

func disputeRows(disputeID, contractID, studentID, companyID uuid.UUID, status, prevStatus string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"dispute_id", "dispute_contract_id", "dispute_student_id",
		"dispute_company_id", "dispute_reason", "dispute_status",
		"dispute_previous_contract_status",
	}).AddRow(disputeID, contractID, studentID, companyID, "Unpaid allowance", status, prevStatus)
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	return fe.Code
}

func TestFileDispute_MarksContractDisputedAndNotifiesCompany(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	contractID := uuid.New()
	companyID := uuid.New()
	companyUserID := uuid.New()
	studentID := uuid.New()
	disputeID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contracts" WHERE contract_id`).
		WillReturnRows(contractRows(contractID, companyID, studentID, contractModel.StatusRunning))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "disputes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "disputes"`).
		WillReturnRows(sqlmock.NewRows([]string{"dispute_id"}).AddRow(disputeID))
	mock.ExpectExec(`UPDATE "contracts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE company_id`).
		WillReturnRows(sqlmock.NewRows([]string{"company_id", "company_user_id", "company_name"}).
			AddRow(companyID, companyUserID, "Acme Corp"))

	emitter := &captureEmitter{}
	svc := NewDisputeLifecycleService(db, emitter)

	dispute, err := svc.FileDispute(context.Background(), studentID, contractID, &dto.FileDisputeRequest{
		Reason: "Unpaid allowance",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusOpen, dispute.DisputeStatus)
	assert.Equal(t, contractModel.StatusRunning, dispute.DisputePreviousContractStatus)
	assert.Equal(t, companyID, dispute.DisputeCompanyID)

	require.Len(t, emitter.inputs, 1)
	assert.Equal(t, notifModel.TypeContractDispute, emitter.inputs[0].Type)
	assert.Equal(t, companyUserID, emitter.inputs[0].UserID)
	assert.Contains(t, emitter.inputs[0].Message, "Unpaid allowance")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileDispute_ContractNotFound(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contracts" WHERE contract_id`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	emitter := &captureEmitter{}
	svc := NewDisputeLifecycleService(db, emitter)

	_, err := svc.FileDispute(context.Background(), uuid.New(), uuid.New(), &dto.FileDisputeRequest{Reason: "x"})
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
	assert.Empty(t, emitter.inputs)
}

func TestFileDispute_ForbiddenForNonOwner(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	contractID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contracts" WHERE contract_id`).
		WillReturnRows(contractRows(contractID, uuid.New(), uuid.New(), contractModel.StatusRunning))
	mock.ExpectRollback()

	emitter := &captureEmitter{}
	svc := NewDisputeLifecycleService(db, emitter)

	_, err := svc.FileDispute(context.Background(), uuid.New(), contractID, &dto.FileDisputeRequest{Reason: "x"})
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
	assert.Empty(t, emitter.inputs)
}

func TestFileDispute_ConflictWhenActiveDisputeExists(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	contractID := uuid.New()
	studentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contracts" WHERE contract_id`).
		WillReturnRows(contractRows(contractID, uuid.New(), studentID, contractModel.StatusDisputed))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "disputes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	emitter := &captureEmitter{}
	svc := NewDisputeLifecycleService(db, emitter)

	_, err := svc.FileDispute(context.Background(), studentID, contractID, &dto.FileDisputeRequest{Reason: "x"})
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
	assert.Empty(t, emitter.inputs)
}

func TestFileDispute_RollsBackWhenContractUpdateFails(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	contractID := uuid.New()
	studentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contracts" WHERE contract_id`).
		WillReturnRows(contractRows(contractID, uuid.New(), studentID, contractModel.StatusRunning))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "disputes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "disputes"`).
		WillReturnRows(sqlmock.NewRows([]string{"dispute_id"}).AddRow(uuid.New()))
	mock.ExpectExec(`UPDATE "contracts" SET`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	emitter := &captureEmitter{}
	svc := NewDisputeLifecycleService(db, emitter)

	_, err := svc.FileDispute(context.Background(), studentID, contractID, &dto.FileDisputeRequest{Reason: "x"})
	assert.Equal(t, fiber.StatusInternalServerError, fiberCode(t, err))
	assert.Empty(t, emitter.inputs, "no notification when the transaction rolls back")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_RejectsTerminalTargets(t *testing.T) {
	db, _, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	svc := NewDisputeLifecycleService(db, &captureEmitter{})

	for _, target := range []string{model.StatusResolved, model.StatusRejected, "Bogus"} {
		_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), target)
		assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err), "target %q", target)
	}
}

func TestUpdateStatus_MovesOpenToUnderReview(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	disputeID := uuid.New()
	companyID := uuid.New()
	studentID := uuid.New()
	studentUserID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "disputes" WHERE dispute_id`).
		WillReturnRows(disputeRows(disputeID, uuid.New(), studentID, companyID, model.StatusOpen, contractModel.StatusRunning))
	mock.ExpectExec(`UPDATE "disputes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "students" WHERE student_id`).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "student_user_id"}).
			AddRow(studentID, studentUserID))

	emitter := &captureEmitter{}
	svc := NewDisputeLifecycleService(db, emitter)

	dispute, err := svc.UpdateStatus(context.Background(), companyID, disputeID, model.StatusUnderReview)
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnderReview, dispute.DisputeStatus)

	require.Len(t, emitter.inputs, 1)
	assert.Equal(t, notifModel.TypeDisputeUpdate, emitter.inputs[0].Type)
	assert.Equal(t, studentUserID, emitter.inputs[0].UserID)
}

func TestResolve_SetsContractToChosenStatus(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	disputeID := uuid.New()
	contractID := uuid.New()
	companyID := uuid.New()
	actingUserID := uuid.New()
	studentID := uuid.New()
	studentUserID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "disputes" WHERE dispute_id`).
		WillReturnRows(disputeRows(disputeID, contractID, studentID, companyID, model.StatusUnderReview, contractModel.StatusRunning))
	mock.ExpectExec(`UPDATE "disputes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "contracts" SET`).
		WithArgs(contractModel.StatusCompleted, sqlmock.AnyArg(), contractID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "students" WHERE student_id`).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "student_user_id"}).
			AddRow(studentID, studentUserID))

	emitter := &captureEmitter{}
	svc := NewDisputeLifecycleService(db, emitter)

	dispute, err := svc.Resolve(context.Background(), companyID, actingUserID, disputeID, &dto.ResolveDisputeRequest{
		Resolution:        "Allowance paid in full",
		NewContractStatus: contractModel.StatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusResolved, dispute.DisputeStatus)
	require.NotNil(t, dispute.DisputeResolution)
	assert.Equal(t, "Allowance paid in full", *dispute.DisputeResolution)
	require.NotNil(t, dispute.DisputeResolvedBy)
	assert.Equal(t, actingUserID, *dispute.DisputeResolvedBy)
	assert.NotNil(t, dispute.DisputeResolvedAt)

	require.Len(t, emitter.inputs, 1)
	assert.Equal(t, notifModel.TypeDisputeResolved, emitter.inputs[0].Type)
	assert.Contains(t, emitter.inputs[0].Message, "Allowance paid in full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_InvalidContractStatus(t *testing.T) {
	db, _, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	svc := NewDisputeLifecycleService(db, &captureEmitter{})

	_, err := svc.Resolve(context.Background(), uuid.New(), uuid.New(), uuid.New(), &dto.ResolveDisputeRequest{
		Resolution:        "done",
		NewContractStatus: contractModel.StatusDisputed,
	})
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestResolve_ConflictWhenAlreadyTerminal(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	disputeID := uuid.New()
	companyID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "disputes" WHERE dispute_id`).
		WillReturnRows(disputeRows(disputeID, uuid.New(), uuid.New(), companyID, model.StatusResolved, contractModel.StatusRunning))
	mock.ExpectRollback()

	emitter := &captureEmitter{}
	svc := NewDisputeLifecycleService(db, emitter)

	_, err := svc.Resolve(context.Background(), companyID, uuid.New(), disputeID, &dto.ResolveDisputeRequest{
		Resolution:        "again",
		NewContractStatus: contractModel.StatusRunning,
	})
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
	assert.Empty(t, emitter.inputs)
}

func TestResolve_ForbiddenForOtherCompany(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	disputeID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "disputes" WHERE dispute_id`).
		WillReturnRows(disputeRows(disputeID, uuid.New(), uuid.New(), uuid.New(), model.StatusOpen, contractModel.StatusRunning))
	mock.ExpectRollback()

	svc := NewDisputeLifecycleService(db, &captureEmitter{})

	_, err := svc.Resolve(context.Background(), uuid.New(), uuid.New(), disputeID, &dto.ResolveDisputeRequest{
		Resolution:        "done",
		NewContractStatus: contractModel.StatusRunning,
	})
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
}

func TestReject_RestoresSnapshotContractStatus(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	disputeID := uuid.New()
	contractID := uuid.New()
	companyID := uuid.New()
	studentID := uuid.New()
	studentUserID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "disputes" WHERE dispute_id`).
		WillReturnRows(disputeRows(disputeID, contractID, studentID, companyID, model.StatusOpen, contractModel.StatusCompleted))
	mock.ExpectExec(`UPDATE "disputes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Kontrak kembali ke snapshot (Completed), hanya bila masih Disputed.
	mock.ExpectExec(`UPDATE "contracts" SET`).
		WithArgs(contractModel.StatusCompleted, sqlmock.AnyArg(), contractID, contractModel.StatusDisputed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "students" WHERE student_id`).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "student_user_id"}).
			AddRow(studentID, studentUserID))

	emitter := &captureEmitter{}
	svc := NewDisputeLifecycleService(db, emitter)

	dispute, err := svc.Reject(context.Background(), companyID, uuid.New(), disputeID, &dto.RejectDisputeRequest{
		Resolution: "No evidence provided",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusRejected, dispute.DisputeStatus)
	require.Len(t, emitter.inputs, 1)
	assert.Equal(t, notifModel.TypeDisputeRejected, emitter.inputs[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_FallsBackToRunningForLegacyRows(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	disputeID := uuid.New()
	contractID := uuid.New()
	companyID := uuid.New()
	studentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "disputes" WHERE dispute_id`).
		WillReturnRows(disputeRows(disputeID, contractID, studentID, companyID, model.StatusOpen, ""))
	mock.ExpectExec(`UPDATE "disputes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "contracts" SET`).
		WithArgs(contractModel.StatusRunning, sqlmock.AnyArg(), contractID, contractModel.StatusDisputed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "students" WHERE student_id`).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "student_user_id"}).
			AddRow(studentID, uuid.New()))

	svc := NewDisputeLifecycleService(db, &captureEmitter{})

	_, err := svc.Reject(context.Background(), companyID, uuid.New(), disputeID, &dto.RejectDisputeRequest{
		Resolution: "stale row",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
