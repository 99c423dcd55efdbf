package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/awaisfaryad25/blog-auth-api/internal/apperrors"
	"github.com/awaisfaryad25/blog-auth-api/internal/models"
)

// DB is the slice of pgxpool.Pool the store uses; pgxmock satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type Store struct {
	db DB
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{db: pool}, nil
}

// NewStoreWithDB wraps an existing connection, mainly for tests.
func NewStoreWithDB(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// EnsureSchema creates the tables on startup. The UNIQUE constraint on
// users.email is the real duplicate-registration guarantee; the handler's
// existence pre-check only exists for a friendlier error.
func (s *Store) EnsureSchema(ctx context.Context) error {
	usersTableSQL := `CREATE TABLE IF NOT EXISTS users (
	    id UUID PRIMARY KEY,
	    firstname TEXT NOT NULL DEFAULT '',
	    lastname TEXT NOT NULL DEFAULT '',
	    email TEXT NOT NULL UNIQUE,
	    contact TEXT NOT NULL DEFAULT '',
	    password_hash TEXT NOT NULL,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	if _, err := s.db.Exec(ctx, usersTableSQL); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	blogsTableSQL := `CREATE TABLE IF NOT EXISTS blogs (
	    id UUID PRIMARY KEY,
	    title TEXT NOT NULL,
	    image TEXT NOT NULL DEFAULT '',
	    category TEXT NOT NULL,
	    summary TEXT NOT NULL,
	    content TEXT NOT NULL,
	    tags TEXT[] NOT NULL DEFAULT '{}',
	    author UUID NOT NULL REFERENCES users(id),
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    published_at TIMESTAMPTZ
	);`
	if _, err := s.db.Exec(ctx, blogsTableSQL); err != nil {
		return fmt.Errorf("create blogs table: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = uuid.NewString()
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (id, firstname, lastname, email, contact, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, user.ID, user.Firstname, user.Lastname, user.Email, user.Contact, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `
		SELECT id::text, firstname, lastname, email, contact, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, `
		SELECT id::text, firstname, lastname, email, contact, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Firstname,
		&user.Lastname,
		&user.Email,
		&user.Contact,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, firstname, lastname, email, contact, password_hash, created_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Firstname,
			&user.Lastname,
			&user.Email,
			&user.Contact,
			&user.PasswordHash,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, user models.User) (*models.User, error) {
	err := s.db.QueryRow(ctx, `
		UPDATE users
		SET firstname = $2, lastname = $3, email = $4, contact = $5, password_hash = $6
		WHERE id = $1
		RETURNING created_at
	`, user.ID, user.Firstname, user.Lastname, user.Email, user.Contact, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

func (s *Store) CreateBlog(ctx context.Context, blog models.Blog) (*models.Blog, error) {
	blog.ID = uuid.NewString()
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	err := s.db.QueryRow(ctx, `
		INSERT INTO blogs (id, title, image, category, summary, content, tags, author, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, blog.ID, blog.Title, blog.Image, blog.Category, blog.Summary, blog.Content, blog.Tags, blog.Author, blog.PublishedAt).
		Scan(&blog.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return &blog, nil
}

func (s *Store) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	err := s.db.QueryRow(ctx, `
		SELECT id::text, title, image, category, summary, content, tags, author::text, created_at, published_at
		FROM blogs
		WHERE id = $1
	`, id).Scan(
		&blog.ID,
		&blog.Title,
		&blog.Image,
		&blog.Category,
		&blog.Summary,
		&blog.Content,
		&blog.Tags,
		&blog.Author,
		&blog.CreatedAt,
		&blog.PublishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return &blog, nil
}

func (s *Store) ListBlogs(ctx context.Context, limit, offset int) ([]models.Blog, int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, title, image, category, summary, content, tags, author::text, created_at, published_at
		FROM blogs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]models.Blog, 0, limit)
	for rows.Next() {
		var blog models.Blog
		if err := rows.Scan(
			&blog.ID,
			&blog.Title,
			&blog.Image,
			&blog.Category,
			&blog.Summary,
			&blog.Content,
			&blog.Tags,
			&blog.Author,
			&blog.CreatedAt,
			&blog.PublishedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	var total int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM blogs").Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			total = 0
		} else {
			return nil, 0, fmt.Errorf("count blogs: %w", err)
		}
	}
	return blogs, total, nil
}

func (s *Store) UpdateBlog(ctx context.Context, blog models.Blog) (*models.Blog, error) {
	// author and created_at stay as written at creation time.
	err := s.db.QueryRow(ctx, `
		UPDATE blogs
		SET title = $2, image = $3, category = $4, summary = $5, content = $6, tags = $7, published_at = $8
		WHERE id = $1
		RETURNING author::text, created_at
	`, blog.ID, blog.Title, blog.Image, blog.Category, blog.Summary, blog.Content, blog.Tags, blog.PublishedAt).
		Scan(&blog.Author, &blog.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return &blog, nil
}
