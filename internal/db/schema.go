package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS train_types (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS trains (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	cargo_num INT NOT NULL,
	place_in_cargo INT NOT NULL,
	train_type_id BIGINT NOT NULL,
	CONSTRAINT fk_trains_type FOREIGN KEY (train_type_id) REFERENCES train_types(id) ON DELETE CASCADE,
	CONSTRAINT chk_trains_capacity CHECK (cargo_num > 0 AND place_in_cargo > 0)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS stations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	latitude DOUBLE NOT NULL,
	longitude DOUBLE NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	// MySQL refuses a CHECK on columns of a cascading foreign key, so
	// distinct route endpoints are left to the catalog service here.
	`CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	source_id BIGINT NOT NULL,
	destination_id BIGINT NOT NULL,
	distance INT NOT NULL,
	CONSTRAINT fk_routes_source FOREIGN KEY (source_id) REFERENCES stations(id) ON DELETE CASCADE,
	CONSTRAINT fk_routes_destination FOREIGN KEY (destination_id) REFERENCES stations(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS crew (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	first_name VARCHAR(255) NOT NULL,
	last_name VARCHAR(255) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS journeys (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	train_id BIGINT NOT NULL,
	departure_time DATETIME(6) NOT NULL,
	arrival_time DATETIME(6) NOT NULL,
	KEY idx_journeys_departure (departure_time),
	CONSTRAINT fk_journeys_route FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE CASCADE,
	CONSTRAINT fk_journeys_train FOREIGN KEY (train_id) REFERENCES trains(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS journey_crew (
	journey_id BIGINT NOT NULL,
	crew_id BIGINT NOT NULL,
	PRIMARY KEY (journey_id, crew_id),
	CONSTRAINT fk_journey_crew_journey FOREIGN KEY (journey_id) REFERENCES journeys(id) ON DELETE CASCADE,
	CONSTRAINT fk_journey_crew_crew FOREIGN KEY (crew_id) REFERENCES crew(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS orders (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	created_at DATETIME(6) NOT NULL,
	user_id BIGINT NOT NULL,
	KEY idx_orders_user (user_id, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS tickets (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	cargo INT NOT NULL,
	seat INT NOT NULL,
	journey_id BIGINT NOT NULL,
	order_id BIGINT NOT NULL,
	UNIQUE KEY uq_ticket_seat_journey (seat, journey_id),
	CONSTRAINT fk_tickets_journey FOREIGN KEY (journey_id) REFERENCES journeys(id) ON DELETE CASCADE,
	CONSTRAINT fk_tickets_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS train_types (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS trains (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	cargo_num INTEGER NOT NULL CHECK (cargo_num > 0),
	place_in_cargo INTEGER NOT NULL CHECK (place_in_cargo > 0),
	train_type_id BIGINT NOT NULL REFERENCES train_types(id) ON DELETE CASCADE
)`,
	`CREATE TABLE IF NOT EXISTS stations (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	latitude DOUBLE PRECISION NOT NULL,
	longitude DOUBLE PRECISION NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS routes (
	id BIGSERIAL PRIMARY KEY,
	source_id BIGINT NOT NULL REFERENCES stations(id) ON DELETE CASCADE,
	destination_id BIGINT NOT NULL REFERENCES stations(id) ON DELETE CASCADE,
	distance INTEGER NOT NULL,
	CONSTRAINT chk_routes_distinct CHECK (source_id <> destination_id)
)`,
	`CREATE TABLE IF NOT EXISTS crew (
	id BIGSERIAL PRIMARY KEY,
	first_name VARCHAR(255) NOT NULL,
	last_name VARCHAR(255) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS journeys (
	id BIGSERIAL PRIMARY KEY,
	route_id BIGINT NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
	train_id BIGINT NOT NULL REFERENCES trains(id) ON DELETE CASCADE,
	departure_time TIMESTAMPTZ NOT NULL,
	arrival_time TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_journeys_departure ON journeys (departure_time)`,
	`CREATE TABLE IF NOT EXISTS journey_crew (
	journey_id BIGINT NOT NULL REFERENCES journeys(id) ON DELETE CASCADE,
	crew_id BIGINT NOT NULL REFERENCES crew(id) ON DELETE CASCADE,
	PRIMARY KEY (journey_id, crew_id)
)`,
	`CREATE TABLE IF NOT EXISTS orders (
	id BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	user_id BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS tickets (
	id BIGSERIAL PRIMARY KEY,
	cargo INTEGER NOT NULL,
	seat INTEGER NOT NULL,
	journey_id BIGINT NOT NULL REFERENCES journeys(id) ON DELETE CASCADE,
	order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	CONSTRAINT uq_ticket_seat_journey UNIQUE (seat, journey_id)
)`,
}

// EnsureSchema creates the railway tables when missing. Statements are
// idempotent; existing tables are left untouched.
func EnsureSchema(ctx context.Context, conn *sql.DB, d Dialect) error {
	stmts := mysqlSchema
	if d == Postgres {
		stmts = postgresSchema
	}
	fresh := !HasTable(ctx, conn, d, "tickets")
	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	if fresh {
		log.Printf("[DB] schema created dialect=%s tables=%d", d, len(stmts))
	}
	return nil
}
