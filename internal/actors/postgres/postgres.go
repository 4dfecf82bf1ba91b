package postgres

import (
	"context"
	"errors"

	"github.com/go-pg/pg/v10"

	"github.com/rbroggi/randomusersvc/internal/actors/watch"
	"github.com/rbroggi/randomusersvc/internal/core/model"
)

// PostgresDB is a postgres adapter for persistence. It keeps one row per
// user uuid and fans out a notification to open watch subscriptions after
// every committed write.
type PostgresDB struct {
	db  *pg.DB
	hub *watch.Hub
}

// PostgresDBArgs are the mandatory arguments for the creation of a PostgresDB
type PostgresDBArgs struct {
	// DB is a postgres database handle
	DB *pg.DB
}

// NewPostgresDB creates a new PostgresDB.
func NewPostgresDB(args PostgresDBArgs) (*PostgresDB, error) {
	if args.DB == nil {
		return nil, errors.New("nil db handle")
	}
	return &PostgresDB{db: args.DB, hub: watch.NewHub()}, nil
}

// SaveUser will upsert the user in the database. The row is replaced
// wholesale and takes a fresh write-sequence value, making it the most
// recent one in list order. The write is visible to every watch emission
// delivered after this method returns.
func (p *PostgresDB) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("nil user passed to save method")
	}

	row := toDBModel(user)
	_, err := p.db.ModelContext(ctx, row).
		OnConflict("(uuid) DO UPDATE").
		Set(upsertSet).
		Insert()
	if err != nil {
		return err
	}

	p.hub.Notify()
	return nil
}

const upsertSet = `full_name = EXCLUDED.full_name, ` +
	`gender = EXCLUDED.gender, ` +
	`email = EXCLUDED.email, ` +
	`phone = EXCLUDED.phone, ` +
	`cell = EXCLUDED.cell, ` +
	`age = EXCLUDED.age, ` +
	`date_of_birth = EXCLUDED.date_of_birth, ` +
	`country = EXCLUDED.country, ` +
	`city = EXCLUDED.city, ` +
	`street = EXCLUDED.street, ` +
	`picture_url = EXCLUDED.picture_url, ` +
	`nat = EXCLUDED.nat, ` +
	`seq = nextval('randomuser.users_write_seq')`

// DeleteUser will delete the user from the database. Deleting a missing
// uuid is a no-op.
func (p *PostgresDB) DeleteUser(ctx context.Context, id string) error {
	row := &userDB{UUID: id}
	if _, err := p.db.ModelContext(ctx, row).WherePK().Delete(); err != nil {
		return err
	}
	p.hub.Notify()
	return nil
}

// ListUsers returns all users, most recently written first. Recency is the
// write-sequence order, nothing else.
func (p *PostgresDB) ListUsers(ctx context.Context) ([]model.User, error) {
	var rows []userDB
	if err := p.db.ModelContext(ctx, &rows).Order("seq DESC").Select(); err != nil && err != pg.ErrNoRows {
		return nil, err
	}
	return translateDBToModels(rows), nil
}

// GetUser returns the user with the given uuid, or model.ErrNotFound.
func (p *PostgresDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	row := new(userDB)
	err := p.db.ModelContext(ctx, row).Where("uuid = ?", id).Select()
	if err == pg.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user := translateDBToModel(*row)
	return &user, nil
}

// WatchUsers subscribes to the full list: replay of the current list
// immediately, then a fresh list after every write or delete.
func (p *PostgresDB) WatchUsers(ctx context.Context) (<-chan []model.User, error) {
	return watch.Stream(ctx, p.hub, p.ListUsers)
}

// WatchUser subscribes to a single uuid. Absent rows are emitted as nil.
func (p *PostgresDB) WatchUser(ctx context.Context, id string) (<-chan *model.User, error) {
	return watch.Stream(ctx, p.hub, func(ctx context.Context) (*model.User, error) {
		user, err := p.GetUser(ctx, id)
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return user, err
	})
}

func toDBModel(user *model.User) *userDB {
	return &userDB{
		UUID:        user.ID,
		FullName:    user.FullName,
		Gender:      user.Gender,
		Email:       user.Email,
		Phone:       user.Phone,
		Cell:        user.Cell,
		Age:         user.Age,
		DateOfBirth: user.DateOfBirth,
		Country:     user.Country,
		City:        user.City,
		Street:      user.Street,
		PictureURL:  user.PictureURL,
		Nat:         user.Nat,
	}
}

func translateDBToModels(dbUsers []userDB) []model.User {
	models := make([]model.User, len(dbUsers))
	for i, dbUser := range dbUsers {
		models[i] = translateDBToModel(dbUser)
	}
	return models
}

// translateDBToModel is the total row-to-domain conversion. A stored row
// is always valid, so it cannot fail.
func translateDBToModel(dbUser userDB) model.User {
	return model.User{
		ID:          dbUser.UUID,
		FullName:    dbUser.FullName,
		Gender:      dbUser.Gender,
		Email:       dbUser.Email,
		Phone:       dbUser.Phone,
		Cell:        dbUser.Cell,
		Age:         dbUser.Age,
		DateOfBirth: dbUser.DateOfBirth,
		Country:     dbUser.Country,
		City:        dbUser.City,
		Street:      dbUser.Street,
		PictureURL:  dbUser.PictureURL,
		Nat:         dbUser.Nat,
	}
}

type userDB struct {
	tableName struct{} `pg:"randomuser.users"`

	// UUID unique identifier of the user. Primary key.
	UUID string `pg:"uuid,pk"`

	// FullName is the display name. Never empty.
	FullName string `pg:"full_name,use_zero"`

	// Gender is the remote gender value.
	Gender string `pg:"gender,use_zero"`

	// Email is the user email.
	Email string `pg:"email,use_zero"`

	// Phone is the landline phone number.
	Phone string `pg:"phone,use_zero"`

	// Cell is the mobile phone number.
	Cell string `pg:"cell,use_zero"`

	// Age in years. Zero means unknown.
	Age int `pg:"age,use_zero"`

	// DateOfBirth is the ISO-8601 date-of-birth string.
	DateOfBirth string `pg:"date_of_birth,use_zero"`

	// Country is the user country.
	Country string `pg:"country,use_zero"`

	// City is the user city.
	City string `pg:"city,use_zero"`

	// Street is the street name and number.
	Street string `pg:"street,use_zero"`

	// PictureURL is the URL of the large profile picture.
	PictureURL string `pg:"picture_url,use_zero"`

	// Nat is the two-letter nationality code.
	Nat string `pg:"nat,use_zero"`

	// Seq is the write sequence assigned on every insert or replace.
	// List order is seq descending.
	Seq int64 `pg:"seq,default:nextval('randomuser.users_write_seq')"`
}
