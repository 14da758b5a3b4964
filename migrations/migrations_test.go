package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	migrations, err := List()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "001_init", migrations[0].Version)
	assert.Contains(t, migrations[0].SQL, "uq_kpis_natural_key")
	assert.Contains(t, migrations[0].SQL, "UNIQUE (tenant_id, company_id, category, period, date)")
}
