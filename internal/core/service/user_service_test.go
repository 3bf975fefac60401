package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

func TestUserService_EditProfile(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.seed(t, "buyer1@mail.com", "s3cret", domain.RoleBuyer)
	svc := NewUserService(repo, zerolog.Nop())

	updated, err := svc.EditProfile(context.Background(), u, ports.EditProfileInput{
		FirstName: "Renamed",
		Password:  "newpass",
	})
	if err != nil {
		t.Fatalf("EditProfile: %v", err)
	}
	if updated.FirstName != "Renamed" {
		t.Fatalf("expected first name updated, got %q", updated.FirstName)
	}
	if updated.LastName != "User" {
		t.Fatalf("blank fields must be left alone, got %q", updated.LastName)
	}

	stored := repo.users["buyer1@mail.com"]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
}

func TestUserService_EditProfile_Anonymous(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.EditProfile(context.Background(), nil, ports.EditProfileInput{FirstName: "X"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserService_AgentAdminIsAdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "agent1@mail.com", "s3cret", domain.RoleAgent)
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.ListAgents(context.Background(), testBuyer); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("buyer list agents: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.CreateAgent(context.Background(), testAgent, ports.RegisterInput{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("agent create agent: expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteUserByEmail(context.Background(), testBuyer, "agent1@mail.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("buyer delete user: expected ErrForbidden, got %v", err)
	}

	agents, err := svc.ListAgents(context.Background(), testAdmin)
	if err != nil {
		t.Fatalf("admin list agents: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(agents))
	}
}

func TestUserService_CreateAgentAssignsAgentRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	agent, err := svc.CreateAgent(context.Background(), testAdmin, ports.RegisterInput{
		FirstName: "Eve",
		LastName:  "Stone",
		Email:     "eve@mail.com",
		Password:  "s3cret",
	})
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	if agent.Role != domain.RoleAgent {
		t.Fatalf("expected AGENT role, got %s", agent.Role)
	}
}

func TestUserService_DeleteUserByEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "agent1@mail.com", "s3cret", domain.RoleAgent)
	svc := NewUserService(repo, zerolog.Nop())

	if err := svc.DeleteUserByEmail(context.Background(), testAdmin, testAdmin.Email); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("self delete: expected ErrInvalidInput, got %v", err)
	}
	if err := svc.DeleteUserByEmail(context.Background(), testAdmin, "Agent1@Mail.com"); err != nil {
		t.Fatalf("DeleteUserByEmail: %v", err)
	}
	if _, ok := repo.users["agent1@mail.com"]; ok {
		t.Fatalf("expected account removed")
	}
}
