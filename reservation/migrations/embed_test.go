package migrations_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/hotel-reservation/reservation/migrations"
)

func TestMigrations_SameConstraints(t *testing.T) {
	t.Parallel()
	for _, path := range []string{"postgres/00001_reservation.sql", "sqlite/00001_reservation.sql"} {
		b, err := migrations.MigrationFiles.ReadFile(path)
		require.NoError(t, err)
		ddl := strings.ToLower(string(b))

		for _, name := range []string{
			"reservation_name_check",
			"reservation_room_check",
			"reservation_dates_check",
			"reservation_natural_key",
		} {
			require.Contains(t, ddl, name, path)
		}
		// names are unbounded on every driver
		require.NotContains(t, ddl, "varchar", path)
	}
}
