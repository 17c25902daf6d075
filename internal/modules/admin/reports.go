package admin

import (
	"context"
	"fmt"
	"math"
	"time"

	"ecowaste/internal/domain"
	"ecowaste/internal/repository"

	"golang.org/x/sync/errgroup"
)

const trendMonths = 6

// -------------------- Reports --------------------

// Reports builds the admin dashboard. The queries run concurrently and are
// not read from a single snapshot.
func (s *Service) Reports(ctx context.Context) (*Report, error) {
	now := s.now()
	windowStart := monthStart(now).AddDate(0, -(trendMonths - 1), 0)

	var (
		accounts, workers, vehicles, pickups, complaints map[string]int64
		facts                                            []repository.PickupFact
		workerJoins, vehicleJoins                        []time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { accounts, err = s.reports.AccountStatusCounts(gctx); return })
	g.Go(func() (err error) { workers, err = s.reports.WorkerStatusCounts(gctx); return })
	g.Go(func() (err error) { vehicles, err = s.reports.VehicleStatusCounts(gctx); return })
	g.Go(func() (err error) { pickups, err = s.reports.PickupStatusCounts(gctx); return })
	g.Go(func() (err error) { complaints, err = s.reports.ComplaintStatusCounts(gctx); return })
	g.Go(func() (err error) { facts, err = s.reports.PickupFacts(gctx, windowStart); return })
	g.Go(func() (err error) { workerJoins, err = s.reports.WorkerJoinTimes(gctx); return })
	g.Go(func() (err error) { vehicleJoins, err = s.reports.VehicleJoinTimes(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build reports: %w", err)
	}

	r := &Report{LastUpdated: now}

	// accounts created before the status column default count as active
	r.Summary.Users = UserSummary{
		Total:  sum(accounts),
		Active: accounts[string(domain.AccountActive)] + accounts[""],
	}
	r.Summary.Users.Inactive = r.Summary.Users.Total - r.Summary.Users.Active

	r.Summary.Workers = WorkerSummary{Total: sum(workers), Active: workers[string(domain.WorkerActive)]}
	r.Summary.Workers.OnLeave = r.Summary.Workers.Total - r.Summary.Workers.Active

	r.Summary.Vehicles = VehicleSummary{Total: sum(vehicles), Active: vehicles[string(domain.VehicleActive)]}
	r.Summary.Vehicles.Maintenance = r.Summary.Vehicles.Total - r.Summary.Vehicles.Active

	r.Summary.Pickups = PickupSummary{
		Total:     sum(pickups),
		Completed: pickups[string(domain.PickupCompleted)],
		Pending:   pickups[string(domain.PickupPending)],
	}

	active := complaints[string(domain.ComplaintPending)] + complaints[string(domain.ComplaintInProgress)]
	resolved := complaints[string(domain.ComplaintResolved)]
	r.Metrics.Complaints = ComplaintMetrics{Active: active, Resolved: resolved, Total: active + resolved}

	var completedKg, recycledKg float64
	var completedThisMonth, completedThisYear int64
	for _, f := range facts {
		if f.Status != domain.PickupCompleted {
			continue
		}
		completedKg += f.Weight
		if f.WasteType.IsRecycled() {
			recycledKg += f.Weight
		}
		if !f.CreatedAt.Before(monthStart(now)) {
			completedThisMonth++
		}
		if !f.CreatedAt.Before(yearStart(now)) {
			completedThisYear++
		}
	}
	r.Metrics.WasteCollected = r.Summary.Pickups.Completed
	r.Metrics.WasteCollectedKg = round1(completedKg)
	r.Metrics.RecyclingRate = percent(recycledKg, completedKg)

	r.Efficiency = Efficiency{
		Users:    percent(float64(r.Summary.Users.Active), float64(r.Summary.Users.Total)),
		Workers:  percent(float64(r.Summary.Workers.Active), float64(r.Summary.Workers.Total)),
		Vehicles: percent(float64(r.Summary.Vehicles.Active), float64(r.Summary.Vehicles.Total)),
		Pickups:  percent(float64(r.Summary.Pickups.Completed), float64(r.Summary.Pickups.Total)),
	}

	r.Trends.Monthly = monthlyTrends(now, facts, workerJoins, vehicleJoins)
	r.Trends.Growth = Growth{
		Users:           percent(float64(completedThisMonth), float64(r.Summary.Users.Total)),
		Pickups:         completedThisMonth,
		PickupsThisYear: completedThisYear,
		Waste:           r.Metrics.WasteCollected,
	}
	return r, nil
}

type monthBucket struct {
	users      map[int64]struct{}
	completed  int64
	totalKg    float64
	recycledKg float64
}

// monthlyTrends buckets pickups by creation month over the trailing window.
// Months without data are reported as zeros.
func monthlyTrends(now time.Time, facts []repository.PickupFact, workerJoins, vehicleJoins []time.Time) []MonthlyTrend {
	first := monthStart(now).AddDate(0, -(trendMonths - 1), 0)
	buckets := make([]monthBucket, trendMonths)
	for i := range buckets {
		buckets[i].users = map[int64]struct{}{}
	}

	for _, f := range facts {
		i := monthIndex(first, f.CreatedAt.In(now.Location()))
		if i < 0 || i >= trendMonths {
			continue
		}
		b := &buckets[i]
		b.users[f.AccountID] = struct{}{}
		if f.Status == domain.PickupCompleted {
			b.completed++
			b.totalKg += f.Weight
			if f.WasteType.IsRecycled() {
				b.recycledKg += f.Weight
			}
		}
	}

	out := make([]MonthlyTrend, 0, trendMonths)
	for i, b := range buckets {
		start := first.AddDate(0, i, 0)
		end := start.AddDate(0, 1, 0)
		out = append(out, MonthlyTrend{
			Month:         start.Format("Jan-06"),
			Users:         int64(len(b.users)),
			Pickups:       b.completed,
			Workers:       countBefore(workerJoins, end),
			Vehicles:      countBefore(vehicleJoins, end),
			TotalWaste:    round1(b.totalKg / 1000),
			RecycledWaste: round1(b.recycledKg / 1000),
		})
	}
	return out
}

func monthIndex(first, t time.Time) int {
	return (t.Year()-first.Year())*12 + int(t.Month()) - int(first.Month())
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func yearStart(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

func countBefore(times []time.Time, end time.Time) int64 {
	var n int64
	for _, t := range times {
		if t.Before(end) {
			n++
		}
	}
	return n
}

func sum(counts map[string]int64) int64 {
	var n int64
	for _, v := range counts {
		n += v
	}
	return n
}

func percent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return round1(part / total * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
