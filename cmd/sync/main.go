package main

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"pmsbridge/internal/adapters/bookingmanager"
	"pmsbridge/internal/adapters/mews"
	"pmsbridge/internal/adapters/observability"
	"pmsbridge/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "sync")

	log.Info().
		Str("bm_base", cfg.BMBase).
		Str("mews_base", cfg.MewsBase).
		Int("workers", cfg.Workers).
		Msg("sync starting")

	bmClient, err := bookingmanager.NewClient(cfg.BMBase, cfg.BMKey, cfg.BMUser, cfg.BMRPS, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize BookingManager client")
	}
	bm := bookingmanager.NewAPI(bmClient)

	mewsClient, err := mews.NewClient(cfg.MewsBase, cfg.MewsClientToken, cfg.MewsAccessToken, cfg.MewsClientName, cfg.MewsRPS, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Mews client")
	}
	mw := mews.NewAPI(mewsClient)

	now := time.Now().UTC()
	from := now.Truncate(24 * time.Hour)
	to := from.AddDate(0, 3, 0)

	syncBookingManager(ctx, bm, cfg.Workers, from, to)
	syncMews(ctx, mw, from, to)

	log.Info().Msg("sync completed")
}

// syncBookingManager lists every property and pulls its calendar for the
// window, bounded by a worker semaphore so the vendor sees at most Workers
// concurrent calls on top of the client rate limit.
func syncBookingManager(ctx context.Context, bm *bookingmanager.API, workers int, from, to time.Time) {
	props, err := bm.Properties.List(ctx, bookingmanager.PropertiesRequest{})
	if err != nil {
		log.Error().Err(err).Msg("property list failed")
		return
	}
	log.Info().Int("properties", len(props.Properties)).Msg("bookingmanager properties fetched")

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for _, p := range props.Properties {
		p := p

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer sem.Release(1)

			cal, err := bm.Calendar.GetForProperty(ctx, id, from, to)
			if err != nil {
				log.Warn().Int("property_id", id).Err(err).Msg("calendar pull failed")
				return
			}
			log.Info().Int("property_id", id).Int("days", len(cal.Days)).Msg("calendar ok")
		}(p.ExternalID)
	}
	wg.Wait()

	bookings, err := bm.Bookings.ListBetween(ctx, from, to)
	if err != nil {
		log.Warn().Err(err).Msg("bookings pull failed")
		return
	}
	log.Info().Int("bookings", len(bookings.Bookings)).Msg("bookingmanager bookings fetched")
}

// syncMews pulls the enterprise configuration, then every reservation in the
// window. No fan-out: the connector endpoints are already batched.
func syncMews(ctx context.Context, mw *mews.API, from, to time.Time) {
	services, err := mw.Services.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("services pull failed")
		return
	}
	log.Info().Int("services", len(services.Services)).Msg("mews services fetched")

	resources, err := mw.Resources.GetAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("resources pull failed")
	} else {
		log.Info().
			Int("resources", len(resources.Resources)).
			Int("categories", len(resources.Categories)).
			Msg("mews resources fetched")
	}

	reservations, err := mw.Reservations.All(ctx, mews.ReservationsRequest{StartUTC: from, EndUTC: to})
	if err != nil {
		log.Warn().Err(err).Msg("reservations pull failed")
		return
	}
	log.Info().Int("reservations", len(reservations)).Msg("mews reservations fetched")
}
