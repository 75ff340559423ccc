package store

import (
	"context"
	"time"
)

// Visit is one tracked page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats summarises visitor traffic.
type Stats struct {
	TotalVisitors    int64     `json:"total_visitors"`
	UniqueVisitors   int64     `json:"unique_visitors"`
	VisitorsToday    int64     `json:"visitors_today"`
	VisitorsThisWeek int64     `json:"visitors_this_week"`
	LastVisit        time.Time `json:"last_visit,omitempty"`
	RecentVisitors   []Visit   `json:"recent_visitors"`
}

// RecordVisit stores a page view under the hashed ip.
func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, at.Unix())
	return err
}

// Stats computes traffic figures relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time, recent int) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT hashed_ip) FROM visitors`,
	).Scan(&stats.TotalVisitors, &stats.UniqueVisitors)
	if err != nil {
		return nil, err
	}

	utc := now.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, midnight.Unix(),
	).Scan(&stats.VisitorsToday)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, now.Add(-7*24*time.Hour).Unix(),
	).Scan(&stats.VisitorsThisWeek)
	if err != nil {
		return nil, err
	}

	stats.RecentVisitors, err = s.RecentVisits(ctx, recent)
	if err != nil {
		return nil, err
	}
	if len(stats.RecentVisitors) > 0 {
		stats.LastVisit = stats.RecentVisitors[0].Timestamp
	}
	return stats, nil
}

// RecentVisits returns up to limit visits, newest first.
func (s *Store) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, err
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// PruneVisits deletes visits older than before and returns how many went.
func (s *Store) PruneVisits(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM visitors WHERE timestamp < ?`, before.Unix())
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		s.logger.Info("privacy cleanup removed old visitor records", "count", n)
	}
	return n, nil
}
