//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vdb

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/m-kellner/RumorLensGo/internal/mm"
)

//
// THE RESULTS CACHE
//

// llm calls are slow and deterministic enough to memoize: every reply is
// keyed on (model, task, post) so a re-run of the same evaluation is free

const (
	CREATERESULTS = `
	CREATE TABLE IF NOT EXISTS results (
		model   TEXT NOT NULL,
		task    TEXT NOT NULL,
		post_id TEXT NOT NULL,
		answer  TEXT NOT NULL,
		run_id  TEXT NOT NULL,
		PRIMARY KEY (model, task, post_id)
	);`
	CREATERUNS = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id  TEXT PRIMARY KEY,
		task    TEXT NOT NULL,
		model   TEXT NOT NULL,
		started TEXT NOT NULL DEFAULT (datetime('now'))
	);`
)

// Cache - a sqlite-backed memo table for llm replies
type Cache struct {
	db    *sql.DB
	RunID string
}

// OpenCache - open or create the cache file and start a new run
func OpenCache(path string, task string, model string) (*Cache, error) {
	const (
		MSG1 = "llm results cache: '%s' (run %s)"
	)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	for _, stmt := range []string{CREATERESULTS, CREATERUNS} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}

	c := &Cache{db: db, RunID: uuid.New().String()}

	if _, err := db.Exec(`INSERT INTO runs (run_id, task, model) VALUES (?, ?, ?)`, c.RunID, task, model); err != nil {
		db.Close()
		return nil, err
	}

	mm.Msg(fmt.Sprintf(MSG1, path, c.RunID), mm.MSGPEEK)
	return c, nil
}

// Lookup - a previously cached answer, if one exists
func (c *Cache) Lookup(model string, task string, postid string) (string, bool) {
	var answer string
	err := c.db.QueryRow(`SELECT answer FROM results WHERE model = ? AND task = ? AND post_id = ?`,
		model, task, postid).Scan(&answer)
	if err != nil {
		return "", false
	}
	return answer, true
}

// Store - remember an answer; replaces any earlier one for the same key
func (c *Cache) Store(model string, task string, postid string, answer string) error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO results (model, task, post_id, answer, run_id) VALUES (?, ?, ?, ?, ?)`,
		model, task, postid, answer, c.RunID)
	return err
}

// Close - release the database
func (c *Cache) Close() error {
	return c.db.Close()
}
