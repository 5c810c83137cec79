package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/report_reviewer/app/portal/internal/conf"
)

type Data struct {
	db *sql.DB
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}

	// Init schema for stored analyses
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS report_analyses (
			id SERIAL PRIMARY KEY,
			report_title TEXT NOT NULL,
			project_name TEXT NOT NULL,
			overall_score INT NOT NULL,
			readiness_level TEXT NOT NULL,
			overall_feedback TEXT NOT NULL,
			section_analysis TEXT NOT NULL,
			strengths TEXT NOT NULL,
			improvements TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return nil, nil, fmt.Errorf("failed to init report_analyses table: %w", err)
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}
