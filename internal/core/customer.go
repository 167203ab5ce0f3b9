package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edvin/insightcrm/internal/model"
	"github.com/edvin/insightcrm/internal/platform"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

const customerColumns = `id, name, email, phone, id_number, gender, to_char(birthday, 'YYYY-MM-DD'),
	zodiac_sign, interests, is_married, has_children, customer_level, customer_source, company, position,
	address, city, country, website, notes, status, priority, assigned_to, last_contact_date, is_active,
	created_at, updated_at`

// CustomerService is the customer repository. Every read, search and
// update path only sees rows with is_active = true.
type CustomerService struct {
	db            DB
	relationships *RelationshipService
	deactivation  *DeactivationService
}

func NewCustomerService(db DB, relationships *RelationshipService) *CustomerService {
	s := &CustomerService{db: db, relationships: relationships}
	s.deactivation = NewDeactivationService(db, s, relationships)
	return s
}

// List returns one page of active customers matching the filter, newest first.
// The page and the total count run concurrently over the same predicate.
func (s *CustomerService) List(ctx context.Context, f model.CustomerFilter) (model.CustomerPage, error) {
	where, args := customerFilterClause(f)

	var (
		customers = []model.Customer{}
		total     int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pageArgs := append(append([]any{}, args...), f.Limit, f.Offset())
		query := fmt.Sprintf(`SELECT %s FROM customers WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
			customerColumns, where, len(args)+1, len(args)+2)

		rows, err := s.db.Query(gctx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("list customers: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			c, err := scanCustomer(rows)
			if err != nil {
				return fmt.Errorf("scan customer: %w", err)
			}
			customers = append(customers, *c)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate customers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := s.db.QueryRow(gctx, "SELECT COUNT(*) FROM customers WHERE "+where, args...).Scan(&total)
		if err != nil {
			return fmt.Errorf("count customers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.CustomerPage{}, err
	}

	return model.CustomerPage{
		Customers:  customers,
		Pagination: model.NewPagination(f.Page, f.Limit, total),
	}, nil
}

// customerFilterClause builds the WHERE predicate shared by the page and count queries.
func customerFilterClause(f model.CustomerFilter) (string, []any) {
	conds := []string{"is_active = true"}
	var args []any

	if search := strings.TrimSpace(f.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		conds = append(conds, fmt.Sprintf(
			"(name LIKE $%[1]d OR email LIKE $%[1]d OR phone LIKE $%[1]d OR company LIKE $%[1]d)", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Level != "" {
		args = append(args, f.Level)
		conds = append(conds, fmt.Sprintf("customer_level = $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GetByID returns an active customer together with its outgoing relationships.
func (s *CustomerService) GetByID(ctx context.Context, id string) (*model.CustomerDetail, error) {
	var (
		customer      *model.Customer
		relationships []model.RelationshipView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.get(gctx, id)
		if err != nil {
			return err
		}
		customer = c
		return nil
	})
	g.Go(func() error {
		views, err := s.relationships.ListByCustomer(gctx, id)
		if err != nil {
			return err
		}
		relationships = views
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.CustomerDetail{Customer: *customer, Relationships: relationships}, nil
}

func (s *CustomerService) get(ctx context.Context, id string) (*model.Customer, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND is_active = true`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("customer", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return c, nil
}

// Create inserts a new active customer owned by ownerID. Email and ID number
// must not collide with another active customer.
func (s *CustomerService) Create(ctx context.Context, ownerID string, c *model.Customer) (*model.Customer, error) {
	c.Email = nullIfEmpty(c.Email)
	c.IDNumber = nullIfEmpty(c.IDNumber)
	c.Website = nullIfEmpty(c.Website)
	c.Birthday = nullIfEmpty(c.Birthday)
	c.AssignedTo = &ownerID
	if c.CustomerLevel == "" {
		c.CustomerLevel = model.LevelC
	}
	if c.Status == "" {
		c.Status = model.StatusActive
	}
	if c.Priority == "" {
		c.Priority = model.PriorityNormal
	}

	if err := s.checkUnique(ctx, deref(c.Email), deref(c.IDNumber)); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx,
		`INSERT INTO customers (id, name, email, phone, id_number, gender, birthday, zodiac_sign, interests,
			is_married, has_children, customer_level, customer_source, company, position, address, city, country,
			website, notes, status, priority, assigned_to, last_contact_date, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::text::date, $8, $9, COALESCE($10, false), COALESCE($11, false), $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, now())
		 RETURNING `+customerColumns,
		platform.NewID(), c.Name, c.Email, c.Phone, c.IDNumber, c.Gender, c.Birthday, c.ZodiacSign, c.Interests,
		c.IsMarried, c.HasChildren, c.CustomerLevel, c.CustomerSource, c.Company, c.Position, c.Address, c.City,
		c.Country, c.Website, c.Notes, c.Status, c.Priority, c.AssignedTo, c.LastContactDate,
	)
	created, err := scanCustomer(row)
	if err != nil {
		return nil, translateWriteError(err, "customer", "create customer")
	}
	return created, nil
}

// checkUnique looks for active customers already holding email or idNumber.
// Empty values are skipped. Both checks run concurrently and every collision
// is reported, email first.
func (s *CustomerService) checkUnique(ctx context.Context, email, idNumber string) error {
	var emailTaken, idNumberTaken bool

	g, gctx := errgroup.WithContext(ctx)
	if email != "" {
		g.Go(func() error {
			err := s.db.QueryRow(gctx,
				"SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1 AND is_active = true)", email,
			).Scan(&emailTaken)
			if err != nil {
				return fmt.Errorf("check customer email: %w", err)
			}
			return nil
		})
	}
	if idNumber != "" {
		g.Go(func() error {
			err := s.db.QueryRow(gctx,
				"SELECT EXISTS(SELECT 1 FROM customers WHERE id_number = $1 AND is_active = true)", idNumber,
			).Scan(&idNumberTaken)
			if err != nil {
				return fmt.Errorf("check customer id number: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var fields []string
	if emailTaken {
		fields = append(fields, "email")
	}
	if idNumberTaken {
		fields = append(fields, "id_number")
	}
	if len(fields) > 0 {
		return &ConflictError{Resource: "customer", Fields: fields}
	}
	return nil
}

// Update applies the non-nil fields of p to an active customer. Uniqueness
// is re-checked only for an email or ID number that actually changes.
func (s *CustomerService) Update(ctx context.Context, id string, p model.CustomerPatch) (*model.Customer, error) {
	current, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var email, idNumber string
	if changed(current.Email, p.Email) {
		email = *p.Email
	}
	if changed(current.IDNumber, p.IDNumber) {
		idNumber = *p.IDNumber
	}
	if email != "" || idNumber != "" {
		if err := s.checkUnique(ctx, email, idNumber); err != nil {
			return nil, err
		}
	}

	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	setText := func(col string, v *string) {
		if v != nil {
			set(col, nullIfEmpty(v))
		}
	}

	if p.Name != nil {
		set("name", *p.Name)
	}
	setText("email", p.Email)
	setText("phone", p.Phone)
	setText("id_number", p.IDNumber)
	setText("gender", p.Gender)
	if p.Birthday != nil {
		args = append(args, nullIfEmpty(p.Birthday))
		sets = append(sets, fmt.Sprintf("birthday = $%d::text::date", len(args)))
	}
	setText("zodiac_sign", p.ZodiacSign)
	setText("interests", p.Interests)
	if p.IsMarried != nil {
		set("is_married", *p.IsMarried)
	}
	if p.HasChildren != nil {
		set("has_children", *p.HasChildren)
	}
	if p.CustomerLevel != nil {
		set("customer_level", *p.CustomerLevel)
	}
	setText("customer_source", p.CustomerSource)
	setText("company", p.Company)
	setText("position", p.Position)
	setText("address", p.Address)
	setText("city", p.City)
	setText("country", p.Country)
	setText("website", p.Website)
	setText("notes", p.Notes)
	if p.Status != nil {
		set("status", *p.Status)
	}
	if p.Priority != nil {
		set("priority", *p.Priority)
	}
	if p.LastContactDate != nil {
		set("last_contact_date", *p.LastContactDate)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE customers SET %s WHERE id = $%d AND is_active = true RETURNING %s`,
		strings.Join(sets, ", "), len(args), customerColumns)

	updated, err := scanCustomer(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("customer", id)
	}
	if err != nil {
		return nil, translateWriteError(err, "customer", "update customer "+id)
	}
	return updated, nil
}

// Delete soft-deletes an active customer and removes every relationship
// touching it, atomically.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if _, err := s.deactivation.Deactivate(ctx, id); err != nil {
		return err
	}
	return nil
}

// deactivateTx flips is_active inside an open transaction.
func (s *CustomerService) deactivateTx(ctx context.Context, q Querier, id string) error {
	tag, err := q.Exec(ctx,
		"UPDATE customers SET is_active = false, updated_at = now() WHERE id = $1 AND is_active = true", id)
	if err != nil {
		return fmt.Errorf("deactivate customer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("customer", id)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.IDNumber, &c.Gender, &c.Birthday,
		&c.ZodiacSign, &c.Interests, &c.IsMarried, &c.HasChildren, &c.CustomerLevel, &c.CustomerSource,
		&c.Company, &c.Position, &c.Address, &c.City, &c.Country, &c.Website, &c.Notes, &c.Status,
		&c.Priority, &c.AssignedTo, &c.LastContactDate, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// changed reports whether next carries a non-empty value different from cur.
func changed(cur, next *string) bool {
	if next == nil || *next == "" {
		return false
	}
	return cur == nil || *cur != *next
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
