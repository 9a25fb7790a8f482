package cronjobs

import (
	"go-crimewatch/snapshot"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	// Expired entries nobody touched for this long get purged.
	purgeIdle = time.Hour

	// Expired entries accessed within this window get re-fetched before
	// the next render asks for them.
	warmWindow = time.Hour
)

// RefreshFunc re-fetches and re-cleans one cached query.
type RefreshFunc func(k snapshot.Key) error

func InitCronJobs(store *snapshot.Store, refresh RefreshFunc) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Purge: drop cold expired snapshots every 10 minutes
	_, err := c.AddFunc("*/10 * * * *", func() {
		log.Println("\nCronJob: Snapshot Purge Running")
		removed := store.PurgeExpired(purgeIdle)
		log.Printf("Purged %d expired snapshots, %d cached", removed, store.Len())
	})
	if err != nil {
		log.Println("Error scheduling Snapshot Purge", err)
	}

	// Keep-warm: refresh recently used expired queries every 15 minutes
	_, err = c.AddFunc("*/15 * * * *", func() {
		log.Println("\nCronJob: Snapshot Keep-Warm Running")
		keys := store.StaleWarmKeys(warmWindow)
		for _, k := range keys {
			if err := refresh(k); err != nil {
				log.Printf("Error refreshing snapshot %s/%s [%s,%s): %v", k.Category, k.AreaCode, k.Start, k.End, err)
			}
		}
		log.Printf("Keep-warm refreshed %d snapshots", len(keys))
	})
	if err != nil {
		log.Println("Error scheduling Snapshot Keep-Warm:", err)
	}

	c.Start()
}
