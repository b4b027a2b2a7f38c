package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

func TestPostgresRegistrationRepo_CreateUserWithRole_CommitsUserAndMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	user := &model.User{
		ID:           "user-1",
		Email:        "member@example.com",
		Name:         "Test Member",
		PasswordHash: "hash",
		Role:         model.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	member := &model.Member{ID: "member-1", UserID: "user-1", JoinedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("user-1", "member@example.com", "Test Member", "hash", "member", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO members`).
		WithArgs("member-1", "user-1", nil, nil, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostgresRegistrationRepo(db)
	if err := repo.CreateUserWithRole(context.Background(), user, member, nil); err != nil {
		t.Fatalf("CreateUserWithRole() error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresRegistrationRepo_CreateUserWithRole_CommitsUserAndTrainer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	user := &model.User{
		ID:           "user-2",
		Email:        "trainer@example.com",
		Name:         "Test Trainer",
		PasswordHash: "hash",
		Role:         model.RoleTrainer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	trainer := &model.Trainer{ID: "trainer-1", UserID: "user-2", CreatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("user-2", "trainer@example.com", "Test Trainer", "hash", "trainer", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO trainers`).
		WithArgs("trainer-1", "user-2", "", "", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostgresRegistrationRepo(db)
	if err := repo.CreateUserWithRole(context.Background(), user, nil, trainer); err != nil {
		t.Fatalf("CreateUserWithRole() error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresRegistrationRepo_MemberInsertFails_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	user := &model.User{
		ID:           "user-1",
		Email:        "member@example.com",
		Name:         "Test Member",
		PasswordHash: "hash",
		Role:         model.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	member := &model.Member{ID: "member-1", UserID: "user-1", JoinedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("user-1", "member@example.com", "Test Member", "hash", "member", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO members`).
		WithArgs("member-1", "user-1", nil, nil, now).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	repo := NewPostgresRegistrationRepo(db)
	err = repo.CreateUserWithRole(context.Background(), user, member, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// ユーザーINSERTを含むトランザクション全体がロールバックされること
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresRegistrationRepo_BeginFails_ReturnsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

	repo := NewPostgresRegistrationRepo(db)
	err = repo.CreateUserWithRole(context.Background(), &model.User{ID: "user-1"}, nil, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
