package migrations

import (
	"context"
	"database/sql"

	"github.com/agendabeleza/backend/internal/constants"
)

// execAll runs each statement in order, stopping at the first failure.
func execAll(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// createUsersTable creates the client accounts table
func createUsersTable() Migration {
	return Migration{
		Name:        "create_utilizador_table",
		Description: "Creates the client accounts table",
		TableName:   constants.TableUsers,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `
				CREATE TABLE IF NOT EXISTS Utilizador (
					Id INT AUTO_INCREMENT PRIMARY KEY,
					Nome VARCHAR(100) NOT NULL,
					Email VARCHAR(255) NOT NULL,
					Telefone VARCHAR(20),
					Password VARCHAR(255) NOT NULL,
					IsAdmin TINYINT(1) NOT NULL DEFAULT 0,
					CONSTRAINT uq_utilizador_email UNIQUE (Email)
				) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`)
		},
	}
}

// createServicesTable creates the catalog table
func createServicesTable() Migration {
	return Migration{
		Name:        "create_servicos_table",
		Description: "Creates the service catalog table",
		TableName:   constants.TableServices,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `
				CREATE TABLE IF NOT EXISTS Servicos (
					Id INT AUTO_INCREMENT PRIMARY KEY,
					Nome VARCHAR(100) NOT NULL,
					Descricao TEXT
				) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`)
		},
	}
}

// createBookingsTable creates the appointments table
func createBookingsTable() Migration {
	return Migration{
		Name:        "create_marcacoes_table",
		Description: "Creates the appointments table",
		TableName:   constants.TableBookings,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `
				CREATE TABLE IF NOT EXISTS Marcacoes (
					Id INT AUTO_INCREMENT PRIMARY KEY,
					Cliente_id INT NOT NULL,
					Servico_id INT NOT NULL,
					DataHora DATETIME NOT NULL,
					Estado VARCHAR(20) NOT NULL DEFAULT 'Pendente',
					Observacoes TEXT,
					CONSTRAINT fk_marcacoes_cliente FOREIGN KEY (Cliente_id) REFERENCES Utilizador(Id) ON DELETE CASCADE,
					CONSTRAINT fk_marcacoes_servico FOREIGN KEY (Servico_id) REFERENCES Servicos(Id),
					INDEX idx_marcacoes_cliente_datahora (Cliente_id, DataHora)
				) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`)
		},
	}
}
