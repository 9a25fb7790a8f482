package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go-crimewatch/config"
	"go-crimewatch/neighborhoods"
	"go-crimewatch/pipeline"
	"go-crimewatch/snapshot"
	"go-crimewatch/socrata"
	"go-crimewatch/views"

	"github.com/gin-gonic/gin"
)

const dateOnly = "2006-01-02"

// Defaults shown by the dashboard before the user picks a range.
const (
	defaultStart = "2023-01-01"
	defaultEnd   = "2024-01-01"
)

type queryParams struct {
	category  string
	community string
	areaCode  string
	start     time.Time
	end       time.Time
}

// parseParams reads category, community, start and end from the query
// string. Community is optional (citywide when absent); its name must
// resolve against the reference table when present.
func parseParams(c *gin.Context, table *neighborhoods.Table) (queryParams, bool) {
	var p queryParams

	p.category = c.Query("category")
	if p.category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return p, false
	}

	p.community = c.Query("community")
	if p.community != "" {
		code, err := table.ResolveAreaCode(p.community)
		if err != nil {
			var nf *neighborhoods.NotFoundError
			if errors.As(err, &nf) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return p, false
		}
		p.areaCode = code
	}

	var err error
	p.start, err = time.Parse(dateOnly, c.DefaultQuery("start", defaultStart))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
		return p, false
	}
	p.end, err = time.Parse(dateOnly, c.DefaultQuery("end", defaultEnd))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
		return p, false
	}

	return p, true
}

// RefreshSnapshot fetches the widest window for a query from the SODA
// endpoint, runs the cleaning pipeline for the requested range, and
// stores the result. Malformed rows are logged for inspection and
// reported in the snapshot's count; they never abort the batch.
func RefreshSnapshot(ctx context.Context, client *socrata.Client, table *neighborhoods.Table, store *snapshot.Store, cfg *config.Config, k snapshot.Key) (snapshot.Snapshot, error) {
	fetchStart, err := time.Parse(dateOnly, cfg.FetchStart)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	start, err := time.Parse(dateOnly, k.Start)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	end, err := time.Parse(dateOnly, k.End)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	// Fetch only the requested window, floored at the earliest date the
	// dashboard serves. Fetching wider risks the server truncating the
	// oldest rows once a busy category hits the row limit.
	queryStart := start
	if queryStart.Before(fetchStart) {
		queryStart = fetchStart
	}

	records, err := client.FetchIncidents(ctx, socrata.Query{
		Category: k.Category,
		AreaCode: k.AreaCode,
		// The server's lower bound is exclusive; back it off so rows at
		// exactly start still reach the pipeline, whose inclusive
		// [start,end) filter stays authoritative.
		Start: queryStart.Add(-time.Second),
		End:   end,
		Limit: cfg.FetchLimit,
	})
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	rows, total, malformed := pipeline.Clean(records, table, k.Category, start, end)
	for _, m := range malformed {
		log.Printf("Malformed record in batch %s/%s: %v", k.Category, k.AreaCode, m.Err)
	}

	return store.Put(k, rows, total, len(malformed)), nil
}

// loadSnapshot serves from the store when the query is still warm,
// otherwise refreshes it.
func loadSnapshot(ctx context.Context, client *socrata.Client, table *neighborhoods.Table, store *snapshot.Store, cfg *config.Config, p queryParams) (snapshot.Snapshot, error) {
	k := snapshot.Key{
		Category: p.category,
		AreaCode: p.areaCode,
		Start:    p.start.Format(dateOnly),
		End:      p.end.Format(dateOnly),
	}
	if snap, ok := store.Get(k); ok {
		return snap, nil
	}
	return RefreshSnapshot(ctx, client, table, store, cfg, k)
}

// Dashboard returns everything one render needs: the snapshot metadata,
// the total, and all five chart views. Zero matches come back as total 0
// with empty arrays, never null.
func Dashboard(c *gin.Context, client *socrata.Client, table *neighborhoods.Table, store *snapshot.Store, cfg *config.Config) {
	p, ok := parseParams(c, table)
	if !ok {
		return
	}

	snap, err := loadSnapshot(c.Request.Context(), client, table, store, cfg, p)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot_id":     snap.ID,
		"fetched_at":      snap.FetchedAt,
		"category":        p.category,
		"community":       p.community,
		"start":           p.start.Format(dateOnly),
		"end":             p.end.Format(dateOnly),
		"total":           snap.Total,
		"malformed_count": snap.MalformedCount,
		"monthly_counts":  views.MonthlyCounts(snap.Rows),
		"arrest_ratio":    views.ArrestRatio(snap.Rows),
		"time_of_day":     views.TimeOfDayCounts(snap.Rows),
		"locations":       views.LocationBreakdown(snap.Rows),
		"coordinates":     views.Coordinates(snap.Rows),
	})
}

// Incidents returns the joined rows themselves, for the dashboard's data
// table.
func Incidents(c *gin.Context, client *socrata.Client, table *neighborhoods.Table, store *snapshot.Store, cfg *config.Config) {
	p, ok := parseParams(c, table)
	if !ok {
		return
	}

	snap, err := loadSnapshot(c.Request.Context(), client, table, store, cfg, p)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot_id":     snap.ID,
		"total":           snap.Total,
		"malformed_count": snap.MalformedCount,
		"incidents":       snap.Rows,
	})
}

// MapCoordinates returns only the valid (lat, lon) pairs for the map
// layer.
func MapCoordinates(c *gin.Context, client *socrata.Client, table *neighborhoods.Table, store *snapshot.Store, cfg *config.Config) {
	p, ok := parseParams(c, table)
	if !ok {
		return
	}

	snap, err := loadSnapshot(c.Request.Context(), client, table, store, cfg, p)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot_id": snap.ID,
		"coordinates": views.Coordinates(snap.Rows),
	})
}
