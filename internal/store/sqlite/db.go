package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database with the given DSN. The busy timeout makes a
// writer queue behind a held write lock instead of failing with SQLITE_BUSY;
// the pragmas ride on the DSN so every pooled connection gets them.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// Migrate creates the schema. Idempotent set of CREATE TABLE / CREATE INDEX
// statements. AUTOINCREMENT keeps row ids monotonically increasing and never
// reused, which the rest of the application relies on.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			display_name VARCHAR(100) NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			role VARCHAR(10) NOT NULL DEFAULT 'user',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS auctions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			images TEXT NOT NULL DEFAULT '[]',
			current_bid REAL NOT NULL,
			starting_bid REAL NOT NULL,
			reserve_price REAL DEFAULT NULL,
			seller_id INTEGER NOT NULL,
			category VARCHAR(50) NOT NULL DEFAULT '',
			condition VARCHAR(50) NOT NULL DEFAULT '',
			start_date DATETIME NOT NULL,
			end_date DATETIME NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			featured BOOLEAN NOT NULL DEFAULT 0,
			watch_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (seller_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS bids (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			auction_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			amount REAL NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (auction_id) REFERENCES auctions(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sender_id INTEGER NOT NULL,
			receiver_id INTEGER NOT NULL,
			content TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (sender_id) REFERENCES users(id),
			FOREIGN KEY (receiver_id) REFERENCES users(id)
		);`,
		// participant_a < participant_b always; the UNIQUE constraint is what
		// makes "at most one conversation per pair" hold at the storage level.
		`CREATE TABLE IF NOT EXISTS conversations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			participant_a INTEGER NOT NULL,
			participant_b INTEGER NOT NULL,
			last_message_id INTEGER DEFAULT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (participant_a, participant_b),
			FOREIGN KEY (participant_a) REFERENCES users(id),
			FOREIGN KEY (participant_b) REFERENCES users(id),
			FOREIGN KEY (last_message_id) REFERENCES messages(id)
		);`,
		`CREATE TABLE IF NOT EXISTS prompt_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			prompt TEXT NOT NULL,
			result TEXT NOT NULL,
			type VARCHAR(10) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);`,
		`CREATE INDEX IF NOT EXISTS idx_auctions_seller ON auctions(seller_id);`,
		`CREATE INDEX IF NOT EXISTS idx_auctions_status ON auctions(status);`,
		`CREATE INDEX IF NOT EXISTS idx_auctions_category ON auctions(category);`,
		`CREATE INDEX IF NOT EXISTS idx_auctions_end_date ON auctions(end_date);`,
		`CREATE INDEX IF NOT EXISTS idx_bids_auction ON bids(auction_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_bids_user ON bids(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages(sender_id, receiver_id);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_receiver_unread ON messages(receiver_id, is_read);`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_updated ON conversations(updated_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_prompt_logs_user ON prompt_logs(user_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
