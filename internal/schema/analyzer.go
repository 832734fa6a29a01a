package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"ttdialect/internal/dialect"
)

// ---------------------------------------------------------------------
// 1. Catalog Inspection
// ---------------------------------------------------------------------

// Inspect reads the current user's tables, columns, foreign keys and
// sequences. Tables come back in dependency order.
func Inspect(ctx context.Context, db *sql.DB, d dialect.Dialect) (*Catalog, error) {
	// Use map for O(1) lookups, with normalized keys for case-insensitive matching
	tableMap := make(map[string]*Table)
	var tables []*Table

	// --- Step 1: Fetch Tables ---
	rows, err := db.QueryContext(ctx, d.TablesQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		t := &Table{Name: name, Dependencies: []string{}}
		tableMap[strings.ToUpper(name)] = t
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	// --- Step 2: Fetch Columns ---
	colRows, err := db.QueryContext(ctx, d.ColumnsQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer colRows.Close()

	for colRows.Next() {
		var tName, cName, dType, isNull, cKey sql.NullString
		var cLen, cPrec, cScale sql.NullInt64

		if err := colRows.Scan(&tName, &cName, &dType, &cLen, &cPrec, &cScale, &isNull, &cKey); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue
		}

		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}
		t.Columns = append(t.Columns, &Column{
			Name:       cName.String,
			Type:       d.ReverseType(dType.String),
			DataType:   dType.String,
			Length:     int(cLen.Int64),
			Precision:  int(cPrec.Int64),
			Scale:      int(cScale.Int64),
			Nullable:   isNull.String == "Y" || isNull.String == "YES",
			PrimaryKey: strings.Contains(cKey.String, "PRI"),
		})
	}
	if err := colRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	// --- Step 3: Fetch Foreign Keys ---
	fkRows, err := db.QueryContext(ctx, d.ForeignKeysQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer fkRows.Close()

	for fkRows.Next() {
		var tName, cConst, cName, rTable, rCol sql.NullString
		if err := fkRows.Scan(&tName, &cConst, &cName, &rTable, &rCol); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if !tName.Valid || !rTable.Valid || tName.String == rTable.String {
			continue
		}
		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}
		// 외부 스키마 참조는 무시
		ref, exists := tableMap[strings.ToUpper(rTable.String)]
		if !exists {
			continue
		}
		t.Dependencies = append(t.Dependencies, ref.Name)
		t.ForeignKeys = append(t.ForeignKeys, &ForeignKey{
			Column:    cName.String,
			RefTable:  ref.Name,
			RefColumn: rCol.String,
		})
	}
	if err := fkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys: %w", err)
	}

	// --- Step 4: Fetch Sequences ---
	sequences, err := ListSequences(ctx, db, d)
	if err != nil {
		return nil, err
	}

	return &Catalog{Tables: SortTablesByFKCount(tables), Sequences: sequences}, nil
}

// ListSequences runs the dialect's sequence existence query.
func ListSequences(ctx context.Context, db *sql.DB, d dialect.Dialect) ([]string, error) {
	rows, err := db.QueryContext(ctx, d.QuerySequencesString())
	if err != nil {
		return nil, fmt.Errorf("failed to query sequences: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan sequence name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sequences: %w", err)
	}
	return names, nil
}

// ---------------------------------------------------------------------
// 2. Sorting Algorithm (Topological / Greedy)
// ---------------------------------------------------------------------

// SortTablesByFKCount sorts tables by dependency order.
// It handles circular dependencies by using a scoring system.
func SortTablesByFKCount(tables []*Table) []*Table {
	var sorted []*Table
	processed := make(map[string]bool)

	// Keep looping until all tables are processed
	for len(sorted) < len(tables) {
		added := false

		// Pass 1: Add tables whose dependencies are fully satisfied
		for _, t := range tables {
			if processed[t.Name] {
				continue
			}

			allDepsProcessed := true
			for _, depName := range t.Dependencies {
				if !processed[depName] {
					allDepsProcessed = false
					break
				}
			}

			if allDepsProcessed {
				sorted = append(sorted, t)
				processed[t.Name] = true
				added = true
			}
		}

		// Pass 2: If no table added, we have a cycle. Break it using heuristic score.
		if !added {
			var bestTable *Table
			bestScore := -999999

			for _, t := range tables {
				if processed[t.Name] {
					continue
				}

				// Score calculation:
				// Base: 0
				// Penalty: Number of Unprocessed FKs (Prefer fewer dependencies)
				// Bonus: Participation in Cycle (Prefer breaking cycles early)
				score := 0

				// Count failing dependencies
				unprocessedDeps := 0
				for _, dep := range t.Dependencies {
					if !processed[dep] {
						unprocessedDeps++
					}
				}
				score -= (unprocessedDeps * 100)

				// Cycle Detection Bonus
				// If this table is referenced by one of its own dependencies (already processed or not),
				// it's a strong candidate to break.
				// However, simplified cycle heuristic:
				// If I depend on A, and A is not processed.
				// Check if A depends on Me.
				isCircular := false
				for _, depName := range t.Dependencies {
					if !processed[depName] {
						// Find depTable object
						for _, cand := range tables {
							if cand.Name == depName {
								// Check if cand depends on t.Name
								for _, candDep := range cand.Dependencies {
									if candDep == t.Name {
										isCircular = true
										break
									}
								}
								break
							}
						}
					}
					if isCircular {
						break
					}
				}

				if isCircular {
					score += 500 // Priority boost
				}

				// Tie-breaker: Name (Deterministic)
				if score > bestScore {
					bestScore = score
					bestTable = t
				} else if score == bestScore {
					if bestTable == nil || t.Name > bestTable.Name { // Alphabetical reverse preference? Or standard?
						bestTable = t
					}
				}
			}

			if bestTable != nil {
				sorted = append(sorted, bestTable)
				processed[bestTable.Name] = true
				log.Printf("[Sort] Breaking circular dependency: %s (Score: %d)", bestTable.Name, bestScore)
			} else {
				// Should not happen if tables > sorted
				log.Println("[Sort] Error: Deadlock in sorting logic? Remaining tables cannot be sorted.")
				break
			}
		}
	}

	return sorted
}
