package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/edvin/insightcrm/internal/core"
	"github.com/edvin/insightcrm/internal/model"
)

type fixtures struct {
	Users         []userFixture         `yaml:"users"`
	Customers     []customerFixture     `yaml:"customers"`
	Relationships []relationshipFixture `yaml:"relationships"`
}

type userFixture struct {
	Key      string `yaml:"key"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type customerFixture struct {
	Key            string  `yaml:"key"`
	Owner          string  `yaml:"owner"`
	Name           string  `yaml:"name"`
	Email          string  `yaml:"email"`
	Phone          *string `yaml:"phone"`
	IDNumber       *string `yaml:"id_number"`
	Gender         *string `yaml:"gender"`
	Birthday       *string `yaml:"birthday"`
	Company        *string `yaml:"company"`
	Position       *string `yaml:"position"`
	City           *string `yaml:"city"`
	Country        *string `yaml:"country"`
	CustomerLevel  string  `yaml:"customer_level"`
	Status         string  `yaml:"status"`
	Priority       string  `yaml:"priority"`
	CustomerSource *string `yaml:"customer_source"`
	Notes          *string `yaml:"notes"`
}

type relationshipFixture struct {
	From  string  `yaml:"from"`
	To    string  `yaml:"to"`
	Type  string  `yaml:"type"`
	Notes *string `yaml:"notes"`
}

func parseFixtures(r io.Reader) (*fixtures, error) {
	var f fixtures
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	users := map[string]bool{}
	for _, u := range f.Users {
		if u.Key == "" || u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("user fixture %q: key, email and password are required", u.Key)
		}
		users[u.Key] = true
	}
	customers := map[string]bool{}
	for _, c := range f.Customers {
		if c.Key == "" || c.Name == "" || c.Email == "" {
			return nil, fmt.Errorf("customer fixture %q: key, name and email are required", c.Key)
		}
		if !users[c.Owner] {
			return nil, fmt.Errorf("customer fixture %q: unknown owner %q", c.Key, c.Owner)
		}
		customers[c.Key] = true
	}
	for _, r := range f.Relationships {
		if !customers[r.From] || !customers[r.To] {
			return nil, fmt.Errorf("relationship %s -> %s: unknown customer", r.From, r.To)
		}
		if r.From == r.To {
			return nil, fmt.Errorf("relationship %s -> %s: a customer cannot relate to itself", r.From, r.To)
		}
	}
	return &f, nil
}

func (c customerFixture) customer() *model.Customer {
	email := c.Email
	return &model.Customer{
		Name:           c.Name,
		Email:          &email,
		Phone:          c.Phone,
		IDNumber:       c.IDNumber,
		Gender:         c.Gender,
		Birthday:       c.Birthday,
		Company:        c.Company,
		Position:       c.Position,
		City:           c.City,
		Country:        c.Country,
		CustomerLevel:  c.CustomerLevel,
		Status:         c.Status,
		Priority:       c.Priority,
		CustomerSource: c.CustomerSource,
		Notes:          c.Notes,
	}
}

type userStore interface {
	Register(ctx context.Context, email, password string, name *string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type customerStore interface {
	Create(ctx context.Context, ownerID string, c *model.Customer) (*model.Customer, error)
	List(ctx context.Context, f model.CustomerFilter) (model.CustomerPage, error)
}

type relationshipStore interface {
	Create(ctx context.Context, r *model.Relationship) (*model.Relationship, error)
}

// seeder writes fixtures through the core services. Records that already
// exist are looked up and reused, so running it twice is harmless.
type seeder struct {
	users         userStore
	customers     customerStore
	relationships relationshipStore
	out           io.Writer
}

type seedResult struct {
	Created, Skipped int
}

func (s *seeder) run(ctx context.Context, f *fixtures) (seedResult, error) {
	var res seedResult
	userIDs := make(map[string]string, len(f.Users))
	customerIDs := make(map[string]string, len(f.Customers))

	for _, u := range f.Users {
		name := u.Name
		user, _, err := s.users.Register(ctx, u.Email, u.Password, &name)
		if errors.Is(err, core.ErrConflict) {
			user, _, err = s.users.Login(ctx, u.Email, u.Password)
			if err != nil {
				return res, fmt.Errorf("reuse user %s: %w", u.Email, err)
			}
			res.Skipped++
			fmt.Fprintf(s.out, "  user %s exists\n", u.Email)
		} else if err != nil {
			return res, fmt.Errorf("create user %s: %w", u.Email, err)
		} else {
			res.Created++
			fmt.Fprintf(s.out, "  user %s created\n", u.Email)
		}
		userIDs[u.Key] = user.ID
	}

	for _, c := range f.Customers {
		created, err := s.customers.Create(ctx, userIDs[c.Owner], c.customer())
		if errors.Is(err, core.ErrConflict) {
			id, err := s.findCustomer(ctx, c.Email)
			if err != nil {
				return res, err
			}
			customerIDs[c.Key] = id
			res.Skipped++
			fmt.Fprintf(s.out, "  customer %s exists\n", c.Name)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("create customer %s: %w", c.Key, err)
		}
		customerIDs[c.Key] = created.ID
		res.Created++
		fmt.Fprintf(s.out, "  customer %s created\n", c.Name)
	}

	for _, r := range f.Relationships {
		_, err := s.relationships.Create(ctx, &model.Relationship{
			CustomerID:        customerIDs[r.From],
			RelatedCustomerID: customerIDs[r.To],
			RelationshipType:  r.Type,
			Notes:             r.Notes,
		})
		if errors.Is(err, core.ErrConflict) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("create relationship %s -> %s: %w", r.From, r.To, err)
		}
		res.Created++
		fmt.Fprintf(s.out, "  relationship %s -[%s]-> %s created\n", r.From, r.Type, r.To)
	}

	return res, nil
}

// findCustomer resolves an existing active customer by exact email.
func (s *seeder) findCustomer(ctx context.Context, email string) (string, error) {
	page, err := s.customers.List(ctx, model.CustomerFilter{Page: 1, Limit: 100, Search: email})
	if err != nil {
		return "", fmt.Errorf("find customer %s: %w", email, err)
	}
	for _, c := range page.Customers {
		if c.Email != nil && *c.Email == email {
			return c.ID, nil
		}
	}
	// The conflict came from id_number, held by a customer with another email.
	return "", fmt.Errorf("find customer %s: conflicting record has a different email", email)
}
