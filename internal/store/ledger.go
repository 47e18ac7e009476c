package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type LedgerStore struct {
	db *sqlx.DB
}

// Settlement selects ledger rows by their settled ("baixa") state.
type Settlement string

const (
	SettlementAll      Settlement = "todos"
	SettlementRealized Settlement = "realizado"
	SettlementOpen     Settlement = "aberto"
)

// ParseSettlement falls back to SettlementAll for unknown values.
func ParseSettlement(s string) Settlement {
	switch Settlement(strings.ToLower(strings.TrimSpace(s))) {
	case SettlementRealized:
		return SettlementRealized
	case SettlementOpen:
		return SettlementOpen
	default:
		return SettlementAll
	}
}

type EntryFilter struct {
	// Years restricts the raw ledger year; empty means every year.
	Years      []int
	Settlement Settlement
	// AlwaysRealized lists plan codes (cash, PIX) that count as realized even
	// without a settlement date.
	AlwaysRealized []string
	// RequireFinancial keeps only rows linked to a financial document.
	RequireFinancial bool
}

const entryColumns = `
	id,
	COALESCE(origem_dfc, '') AS origem_dfc,
	COALESCE(nome_2, '') AS nome_2,
	COALESCE(codigo_plano, '') AS codigo_plano,
	COALESCE(nome, '') AS nome,
	COALESCE(mes, 0) AS mes,
	COALESCE(ano, 0) AS ano,
	COALESCE(valor_mov, 0) AS valor_mov,
	COALESCE(natureza, '') AS natureza,
	dt_mov,
	baixa,
	COALESCE(financeiro, '') AS financeiro`

/*
ListEntries loads the raw ledger rows of a report. The period shift of boleto
and card settlements happens in memory afterwards, so callers asking for a
single year must include the previous one as well.
*/
func (ls *LedgerStore) ListEntries(ctx context.Context, f EntryFilter) ([]Entry, error) {
	query := `SELECT` + entryColumns + ` FROM dfc_analitica WHERE 1=1`
	args := []any{}

	if len(f.Years) > 0 {
		query += ` AND ano IN (?)`
		args = append(args, f.Years)
	}

	switch f.Settlement {
	case SettlementRealized:
		if len(f.AlwaysRealized) > 0 {
			query += ` AND (baixa IS NOT NULL OR codigo_plano IN (?))`
			args = append(args, f.AlwaysRealized)
		} else {
			query += ` AND baixa IS NOT NULL`
		}
	case SettlementOpen:
		query += ` AND baixa IS NULL`
	}

	if f.RequireFinancial {
		query += ` AND financeiro IS NOT NULL`
	}
	query += ` ORDER BY ano, mes, id`

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger query: %w", err)
	}

	var entries []Entry
	if err := ls.db.SelectContext(ctx, &entries, ls.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	return entries, nil
}

func (ls *LedgerStore) ListYears(ctx context.Context) ([]int, error) {
	query := `SELECT DISTINCT ano FROM dfc_analitica WHERE ano IS NOT NULL ORDER BY ano DESC`

	var years []int
	if err := ls.db.SelectContext(ctx, &years, query); err != nil {
		return nil, fmt.Errorf("failed to query ledger years: %w", err)
	}
	return years, nil
}

func (ls *LedgerStore) InsertEntries(ctx context.Context, entries []Entry) (int64, error) {
	query := `INSERT INTO dfc_analitica (
		origem_dfc,
		nome_2,
		codigo_plano,
		nome,
		mes,
		ano,
		valor_mov,
		natureza,
		dt_mov,
		baixa,
		financeiro
	) VALUES (
		:origem_dfc,
		:nome_2,
		:codigo_plano,
		:nome,
		:mes,
		:ano,
		:valor_mov,
		:natureza,
		:dt_mov,
		:baixa,
		NULLIF(:financeiro, '')
	)`

	n, err := insertAll(ctx, ls.db, query, entries)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ledger entries: %w", err)
	}
	return n, nil
}
