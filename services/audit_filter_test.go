package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/catastro/minero-backend/models"
)

// FilterAuditoriasTestSuite exercises the audit query engine over a fixed
// candidate set.
type FilterAuditoriasTestSuite struct {
	suite.Suite
	items []models.Auditoria
}

func (suite *FilterAuditoriasTestSuite) SetupTest() {
	nombre := "Alicia Gómez"

	suite.items = []models.Auditoria{
		{
			ID:            1,
			Accion:        "CREATE",
			Entidad:       "PropiedadMinera",
			Descripcion:   `{"datos": {"idTransaccion": "T123"}}`,
			AudFecha:      time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			AudUsuario:    7,
			UsuarioNombre: &nombre,
		},
		{
			ID:          2,
			Accion:      "UPDATE",
			Entidad:     "Expediente",
			Descripcion: `{"datos": {"idTransaccion": "T999"}}`,
			AudFecha:    time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
			AudUsuario:  8,
		},
		{
			ID:          3,
			Accion:      "DELETE",
			Entidad:     "PropiedadMinera",
			Descripcion: "baja manual T123",
			AudUsuario:  0,
			// no timestamp
		},
	}
}

func (suite *FilterAuditoriasTestSuite) TestEmptyFilterMatchesEverything() {
	result := FilterAuditorias(suite.items, models.AuditoriaFilter{})
	assert.Len(suite.T(), result, 3)
}

func (suite *FilterAuditoriasTestSuite) TestUsuarioMatchesDisplayName() {
	result := FilterAuditorias(suite.items, models.AuditoriaFilter{Usuario: "gómez"})
	if assert.Len(suite.T(), result, 1) {
		assert.Equal(suite.T(), int64(1), result[0].ID)
	}
}

func (suite *FilterAuditoriasTestSuite) TestUsuarioMatchesNumericID() {
	result := FilterAuditorias(suite.items, models.AuditoriaFilter{Usuario: "8"})
	if assert.Len(suite.T(), result, 1) {
		assert.Equal(suite.T(), int64(2), result[0].ID)
	}
}

func (suite *FilterAuditoriasTestSuite) TestEntidadMembershipIsCaseInsensitive() {
	result := FilterAuditorias(suite.items, models.AuditoriaFilter{
		Entidades: []string{"propiedadminera"},
	})
	assert.Len(suite.T(), result, 2)
}

func (suite *FilterAuditoriasTestSuite) TestAccionMembership() {
	result := FilterAuditorias(suite.items, models.AuditoriaFilter{
		Acciones: []string{"update", "delete"},
	})
	assert.Len(suite.T(), result, 2)
}

func (suite *FilterAuditoriasTestSuite) TestIDTransaccionStructuredSearch() {
	result := FilterAuditorias(suite.items, models.AuditoriaFilter{IDTransaccion: "T123"})

	// Record 1 matches through the recursive key search, record 3 through the
	// plain-text fallback; record 2 carries T999 and stays out.
	if assert.Len(suite.T(), result, 2) {
		assert.Equal(suite.T(), int64(1), result[0].ID)
		assert.Equal(suite.T(), int64(3), result[1].ID)
	}
}

func (suite *FilterAuditoriasTestSuite) TestIDTransaccionNoMatch() {
	result := FilterAuditorias(suite.items, models.AuditoriaFilter{IDTransaccion: "T555"})
	assert.Empty(suite.T(), result)
}

func (suite *FilterAuditoriasTestSuite) TestStructuredSearchIgnoresOtherKeys() {
	// T999 appears only under an idTransaccion key; searching for it in a
	// record whose idTransaccion is T123 must not match.
	result := FilterAuditorias(suite.items[:1], models.AuditoriaFilter{IDTransaccion: "datos"})
	assert.Empty(suite.T(), result)
}

func (suite *FilterAuditoriasTestSuite) TestDateRangeInclusive() {
	desde := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	result := FilterAuditorias(suite.items, models.AuditoriaFilter{
		FechaDesde: &desde,
		FechaHasta: &hasta,
	})

	// Record 2 (Feb 1) is out of range; record 3 has no timestamp and fails
	// as soon as a bound is set.
	if assert.Len(suite.T(), result, 1) {
		assert.Equal(suite.T(), int64(1), result[0].ID)
	}
}

func (suite *FilterAuditoriasTestSuite) TestExactBoundInclusivity() {
	desde := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	hasta := desde

	result := FilterAuditorias(suite.items, models.AuditoriaFilter{
		FechaDesde: &desde,
		FechaHasta: &hasta,
	})
	assert.Len(suite.T(), result, 1)
}

func (suite *FilterAuditoriasTestSuite) TestMissingTimestampFailsSingleBound() {
	hasta := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	result := FilterAuditorias(suite.items, models.AuditoriaFilter{FechaHasta: &hasta})
	assert.Len(suite.T(), result, 2)
	for _, item := range result {
		assert.NotEqual(suite.T(), int64(3), item.ID)
	}
}

func (suite *FilterAuditoriasTestSuite) TestCriteriaCombineWithAnd() {
	result := FilterAuditorias(suite.items, models.AuditoriaFilter{
		Entidades:     []string{"PropiedadMinera"},
		IDTransaccion: "T123",
		Usuario:       "alicia",
	})
	if assert.Len(suite.T(), result, 1) {
		assert.Equal(suite.T(), int64(1), result[0].ID)
	}
}

func TestFilterAuditoriasTestSuite(t *testing.T) {
	suite.Run(t, new(FilterAuditoriasTestSuite))
}
