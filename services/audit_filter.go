package services

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/structval"
)

// FilterAuditorias applies the filter criteria to a candidate record set and
// returns the matching subsequence in its original order. Empty criteria
// match everything; supplied criteria combine with AND semantics.
func FilterAuditorias(items []models.Auditoria, filter models.AuditoriaFilter) []models.Auditoria {
	usuario := strings.ToLower(strings.TrimSpace(filter.Usuario))
	idTransaccion := strings.ToLower(strings.TrimSpace(filter.IDTransaccion))
	entidades := lowerAll(filter.Entidades)
	acciones := lowerAll(filter.Acciones)

	var filtered []models.Auditoria
	for _, item := range items {
		if usuario != "" && !matchesUsuario(item, usuario) {
			continue
		}
		if len(entidades) > 0 && !slices.Contains(entidades, strings.ToLower(item.Entidad)) {
			continue
		}
		if len(acciones) > 0 && !slices.Contains(acciones, strings.ToLower(item.Accion)) {
			continue
		}
		if idTransaccion != "" && !matchesIDTransaccion(item.Descripcion, idTransaccion) {
			continue
		}
		if !matchesRangoFechas(item.AudFecha, filter.FechaDesde, filter.FechaHasta) {
			continue
		}
		filtered = append(filtered, item)
	}

	return filtered
}

func lowerAll(values []string) []string {
	lowered := make([]string, 0, len(values))
	for _, v := range values {
		lowered = append(lowered, strings.ToLower(v))
	}
	return lowered
}

// matchesUsuario matches the filter text against either the resolved display
// name or the numeric actor id rendered as a string.
func matchesUsuario(item models.Auditoria, filtro string) bool {
	if item.UsuarioNombre != nil &&
		strings.Contains(strings.ToLower(*item.UsuarioNombre), filtro) {
		return true
	}
	return strings.Contains(strconv.FormatInt(item.AudUsuario, 10), filtro)
}

// matchesIDTransaccion searches the description for a transaction id. When
// the description parses as structured data the search is a recursive walk
// over keys containing "idtransaccion"; when it does not, it degrades to a
// plain substring match over the raw text. The asymmetry is intentional and
// mirrors how the list view behaves.
func matchesIDTransaccion(descripcion, filtro string) bool {
	if descripcion == "" {
		return false
	}

	if v, ok := structval.Parse(descripcion); ok {
		return structval.SearchKey(v, "idtransaccion", filtro)
	}
	return strings.Contains(strings.ToLower(descripcion), filtro)
}

// matchesRangoFechas checks the inclusive date range. A record without a
// resolvable timestamp fails as soon as either bound is supplied.
func matchesRangoFechas(fecha time.Time, desde, hasta *time.Time) bool {
	if desde == nil && hasta == nil {
		return true
	}
	if fecha.IsZero() {
		return false
	}
	if desde != nil && fecha.Before(*desde) {
		return false
	}
	if hasta != nil && fecha.After(*hasta) {
		return false
	}
	return true
}
