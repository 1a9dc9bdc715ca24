// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines table and column names. The schema is shared
// with the existing site, so the names follow its Portuguese conventions.
package constants

// Table Names define the names of database tables used in the application.
const (
	// TableUsers stores client and administrator accounts.
	TableUsers = "Utilizador"

	// TableServices stores the service catalog.
	TableServices = "Servicos"

	// TableBookings stores appointments.
	TableBookings = "Marcacoes"

	// TableMigrations tracks applied schema migrations.
	TableMigrations = "migrations"

	// TableSeeds tracks applied data seeds.
	TableSeeds = "seeds"
)

// Column Names used by the repositories.
const (
	ColumnID          = "Id"
	ColumnName        = "Nome"
	ColumnEmail       = "Email"
	ColumnPhone       = "Telefone"
	ColumnPassword    = "Password"
	ColumnIsAdmin     = "IsAdmin"
	ColumnDescription = "Descricao"
	ColumnClientID    = "Cliente_id"
	ColumnServiceID   = "Servico_id"
	ColumnScheduledAt = "DataHora"
	ColumnStatus      = "Estado"
	ColumnNotes       = "Observacoes"
)
