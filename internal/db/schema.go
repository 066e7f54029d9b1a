package db

import "database/sql"

// EnsureSchema creates every table the service owns. Statements are
// idempotent so startup is safe against an already-provisioned database.
func EnsureSchema(d *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			role VARCHAR(50) NOT NULL DEFAULT 'AGENT',
			team VARCHAR(100) NOT NULL DEFAULT '',
			title VARCHAR(20) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS pending_bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			ref_no VARCHAR(100) NOT NULL,
			pax_name VARCHAR(255) NOT NULL,
			agent_name VARCHAR(255) NOT NULL DEFAULT '',
			team_name VARCHAR(100) NOT NULL DEFAULT '',
			num_pax INT NOT NULL DEFAULT 1,
			pnr VARCHAR(100) NOT NULL DEFAULT '',
			airline VARCHAR(100) NOT NULL DEFAULT '',
			from_to VARCHAR(255) NOT NULL DEFAULT '',
			booking_type VARCHAR(50) NOT NULL DEFAULT '',
			booking_status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			description TEXT,
			pc_date DATE NULL,
			travel_date DATE NULL,
			payment_method VARCHAR(20) NOT NULL DEFAULT 'FULL',
			revenue DECIMAL(12,2) NOT NULL DEFAULT 0,
			prod_cost DECIMAL(12,2) NOT NULL DEFAULT 0,
			trans_fee DECIMAL(12,2) NOT NULL DEFAULT 0,
			surcharge DECIMAL(12,2) NOT NULL DEFAULT 0,
			profit DECIMAL(12,2) NOT NULL DEFAULT 0,
			balance DECIMAL(12,2) NOT NULL DEFAULT 0,
			created_by_id BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS pending_passengers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			pending_booking_id BIGINT NOT NULL,
			title VARCHAR(20) NOT NULL DEFAULT '',
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			gender VARCHAR(20) NOT NULL DEFAULT '',
			category VARCHAR(20) NOT NULL DEFAULT 'ADULT',
			birthday DATE NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			contact_no VARCHAR(100) NOT NULL DEFAULT '',
			nationality VARCHAR(100) NOT NULL DEFAULT '',
			KEY idx_pending_passengers_booking (pending_booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS pending_initial_payments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			pending_booking_id BIGINT NOT NULL,
			amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			transaction_method VARCHAR(50) NOT NULL DEFAULT '',
			payment_date DATE NULL,
			KEY idx_pending_payments_booking (pending_booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS pending_instalments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			pending_booking_id BIGINT NOT NULL,
			due_date DATE NULL,
			amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			KEY idx_pending_instalments_booking (pending_booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS pending_supplier_costs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			pending_booking_id BIGINT NOT NULL,
			supplier VARCHAR(100) NOT NULL DEFAULT '',
			category VARCHAR(50) NOT NULL DEFAULT '',
			amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			description TEXT,
			KEY idx_pending_costs_booking (pending_booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			folder_no VARCHAR(20) NOT NULL,
			ref_no VARCHAR(100) NOT NULL,
			pax_name VARCHAR(255) NOT NULL,
			agent_name VARCHAR(255) NOT NULL DEFAULT '',
			team_name VARCHAR(100) NOT NULL DEFAULT '',
			num_pax INT NOT NULL DEFAULT 1,
			pnr VARCHAR(100) NOT NULL DEFAULT '',
			airline VARCHAR(100) NOT NULL DEFAULT '',
			from_to VARCHAR(255) NOT NULL DEFAULT '',
			booking_type VARCHAR(50) NOT NULL DEFAULT '',
			booking_status VARCHAR(20) NOT NULL DEFAULT 'CONFIRMED',
			description TEXT,
			pc_date DATE NULL,
			travel_date DATE NULL,
			payment_method VARCHAR(20) NOT NULL DEFAULT 'FULL',
			revenue DECIMAL(12,2) NOT NULL DEFAULT 0,
			prod_cost DECIMAL(12,2) NOT NULL DEFAULT 0,
			trans_fee DECIMAL(12,2) NOT NULL DEFAULT 0,
			surcharge DECIMAL(12,2) NOT NULL DEFAULT 0,
			profit DECIMAL(12,2) NOT NULL DEFAULT 0,
			balance DECIMAL(12,2) NOT NULL DEFAULT 0,
			approved_by_id BIGINT NOT NULL,
			is_settled TINYINT(1) NOT NULL DEFAULT 0,
			settled_at DATETIME NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_bookings_folder_no (folder_no)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS passengers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			title VARCHAR(20) NOT NULL DEFAULT '',
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			gender VARCHAR(20) NOT NULL DEFAULT '',
			category VARCHAR(20) NOT NULL DEFAULT 'ADULT',
			birthday DATE NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			contact_no VARCHAR(100) NOT NULL DEFAULT '',
			nationality VARCHAR(100) NOT NULL DEFAULT '',
			KEY idx_passengers_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS initial_payments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			transaction_method VARCHAR(50) NOT NULL DEFAULT '',
			payment_date DATE NULL,
			KEY idx_initial_payments_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS instalments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			due_date DATE NULL,
			amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			paid_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			type VARCHAR(20) NOT NULL DEFAULT 'INSTALMENT',
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			KEY idx_instalments_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS supplier_costs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			supplier VARCHAR(100) NOT NULL DEFAULT '',
			category VARCHAR(50) NOT NULL DEFAULT '',
			amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			paid_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			description TEXT,
			KEY idx_supplier_costs_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			method VARCHAR(50) NOT NULL DEFAULT '',
			pay_date DATE NULL,
			reference VARCHAR(100) NOT NULL DEFAULT '',
			instalment_id BIGINT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_transactions_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS supplier_payments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			supplier_cost_id BIGINT NOT NULL,
			amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			method VARCHAR(50) NOT NULL DEFAULT '',
			pay_date DATE NULL,
			reference VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_supplier_payments_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS counters (
			name VARCHAR(50) PRIMARY KEY,
			value BIGINT NOT NULL DEFAULT 0
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range stmts {
		if _, err := d.Exec(stmt); err != nil {
			return err
		}
	}

	// Seed the folder-number sequence so allocation is a plain UPDATE.
	if _, err := d.Exec(`INSERT IGNORE INTO counters (name, value) VALUES ('folder_no', 0)`); err != nil {
		return err
	}
	return nil
}
