package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/vlkr-dev/courtline/internal/club"
	"github.com/vlkr-dev/courtline/internal/database"
	"github.com/vlkr-dev/courtline/internal/roster"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "courtline.db",
		"MIGRATIONS_DIR": "migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	// Optional Turso primary; empty means plain local SQLite.
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	startTime := time.Now()

	clubStore := club.New(db)
	for _, c := range seedClubs() {
		if err := clubStore.UpsertClub(c); err != nil {
			log.Fatalf("Failed to insert club %s: %s", c.Name, err)
		}
	}
	log.Info("Seeded clubs.", "count", len(seedClubs()))

	rosterStore := roster.New(db)
	players := seedPlayers()
	if err := rosterStore.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to insert players: %s", err)
	}
	log.Info("Seeded players.", "count", len(players))

	log.Info("Seeding complete.", "duration", time.Since(startTime))
}

// seedClubs returns the Belgrade club fixtures. Court counts follow the
// clubs' published layouts; prices are per hour in RSD.
func seedClubs() []club.Club {
	return []club.Club{
		belgradeClub("baseline", "Baseline", "Novi Beograd", 2.3, 2000, layout{indoor: 3, outdoor: 2, available: 2}),
		belgradeClub("gemax", "Gemax", "Banjica", 3.1, 2200, layout{indoor: 4, outdoor: 2, available: 1}),
		belgradeClub("privilege", "Privilege", "Dedinje", 1.5, 2500, layout{indoor: 2, outdoor: 4, available: 3}),
		belgradeClub("padel-center", "Padel Center", "Novi Beograd", 1.8, 1800, layout{indoor: 4, outdoor: 0, available: 2}),
		belgradeClub("trim", "Trim", "Košutnjak", 3.2, 1600, layout{indoor: 2, outdoor: 1, available: 1}),
		belgradeClub("ada-ciganlija", "Ada Ciganlija", "Ada Ciganlija", 3.2, 1400, layout{indoor: 0, outdoor: 8, available: 2}),
		belgradeClub("toplana", "Toplana", "Novi Beograd", 3.2, 1500, layout{indoor: 2, outdoor: 0, available: 0}),
		belgradeClub("tipsarevic", "Tipsarevic Center", "Palilula", 3.2, 2400, layout{indoor: 3, outdoor: 1, available: 1}),
	}
}

type layout struct {
	indoor    int
	outdoor   int
	available int
}

func belgradeClub(id, name, location string, distance float64, price int64, l layout) club.Club {
	c := club.Club{
		ID:           id,
		Name:         name,
		Location:     location,
		DistanceKm:   distance,
		PricePerHour: price,
		Amenities:    []string{"parking", "locker rooms"},
	}
	total := l.indoor + l.outdoor
	for i := 0; i < total; i++ {
		surface := club.SurfaceClay
		if i%2 == 1 {
			surface = club.SurfaceHard
		}
		c.Courts = append(c.Courts, club.Court{
			ID:           id + "-court-" + string(rune('1'+i)),
			ClubID:       id,
			Number:       i + 1,
			Surface:      surface,
			Indoor:       i < l.indoor,
			IsAvailable:  i < l.available,
			PricePerHour: price,
		})
	}
	return c
}

// seedPlayers returns the player fixtures with their weekly schedules.
func seedPlayers() []roster.Player {
	evening := func(start, end string) roster.DayAvailability {
		return roster.DayAvailability{
			Available: true,
			TimeSlots: []roster.TimeRange{{Start: start, End: end}},
		}
	}
	off := roster.DayAvailability{}

	return []roster.Player{
		{
			ID: "player-1", Name: "Ana Jovanović", Level: roster.LevelAdvanced,
			Rating: 4.5, PlayStyle: roster.StyleAggressive, Location: "Novi Beograd",
			Age: 28, Timezone: "Europe/Belgrade", Clubs: []string{"Baseline", "Privilege"},
			IsOnline: true, LastActive: time.Now(), Verified: true,
			Stats: roster.PlayerStats{
				MatchesPlayed: 156, MatchesWon: 124, CurrentStreak: 5, LongestStreak: 12,
				RecentForm: []roster.Outcome{"W", "W", "L", "W", "W"},
			},
			Schedule: roster.WeeklySchedule{
				"monday": off, "tuesday": evening("18:00", "21:00"),
				"wednesday": evening("19:00", "22:00"), "thursday": off,
				"friday": evening("17:00", "20:00"), "saturday": evening("09:00", "18:00"),
				"sunday": evening("10:00", "16:00"),
			},
		},
		{
			ID: "player-2", Name: "Marko Đorđević", Level: roster.LevelIntermediate,
			Rating: 4.0, PlayStyle: roster.StyleDefensive, Location: "Zemun",
			Age: 32, Timezone: "Europe/Belgrade", Clubs: []string{"Gemax"},
			IsOnline: false, LastActive: time.Date(2025, 6, 29, 9, 30, 0, 0, time.UTC),
			Stats: roster.PlayerStats{
				MatchesPlayed: 89, MatchesWon: 51, CurrentStreak: 2, LongestStreak: 8,
				RecentForm: []roster.Outcome{"L", "W", "W", "L", "W"},
			},
			Schedule: roster.WeeklySchedule{
				"monday": evening("19:00", "21:00"), "tuesday": off,
				"wednesday": evening("20:00", "22:00"), "thursday": evening("19:00", "21:00"),
				"friday": off, "saturday": evening("14:00", "18:00"),
				"sunday": evening("11:00", "15:00"),
			},
		},
		{
			ID: "player-3", Name: "Stefan Milanović", Level: roster.LevelExpert,
			Rating: 5.5, PlayStyle: roster.StyleAllCourt, Location: "Vračar",
			Age: 24, Timezone: "Europe/Belgrade", Clubs: []string{"Privilege", "Tipsarevic"},
			IsOnline: true, LastActive: time.Now(), Verified: true,
			Stats: roster.PlayerStats{
				MatchesPlayed: 234, MatchesWon: 198, CurrentStreak: 11, LongestStreak: 18,
				RecentForm: []roster.Outcome{"W", "W", "W", "W", "W"},
			},
			Schedule: roster.WeeklySchedule{
				"monday": evening("17:00", "21:00"), "tuesday": evening("17:00", "21:00"),
				"wednesday": evening("17:00", "21:00"), "thursday": evening("17:00", "21:00"),
				"friday": evening("17:00", "21:00"), "saturday": evening("09:00", "20:00"),
				"sunday": evening("09:00", "20:00"),
			},
		},
		{
			ID: "player-4", Name: "Milica Stojanović", Level: roster.LevelLowerIntermediate,
			Rating: 3.5, PlayStyle: roster.StyleRecreational, Location: "Banovo Brdo",
			Age: 35, Timezone: "Europe/Belgrade", Clubs: []string{"Trim"},
			IsOnline: false, LastActive: time.Date(2025, 6, 28, 18, 0, 0, 0, time.UTC),
			Stats: roster.PlayerStats{
				MatchesPlayed: 45, MatchesWon: 23, CurrentStreak: 1, LongestStreak: 4,
				RecentForm: []roster.Outcome{"W", "L", "L", "W", "L"},
			},
			Schedule: roster.WeeklySchedule{
				"monday": off, "tuesday": off, "wednesday": evening("18:00", "20:00"),
				"thursday": off, "friday": off, "saturday": evening("10:00", "14:00"),
				"sunday": off,
			},
		},
		{
			ID: "player-5", Name: "Nemanja Petrović", Level: roster.LevelProfessional,
			Rating: 6.5, PlayStyle: roster.StyleAllCourt, Location: "Novi Beograd",
			Age: 29, Timezone: "Europe/Belgrade", Clubs: []string{"Baseline", "Tipsarevic"},
			IsOnline: true, LastActive: time.Now(), Verified: true,
			Stats: roster.PlayerStats{
				MatchesPlayed: 312, MatchesWon: 276, CurrentStreak: 8, LongestStreak: 23,
				RecentForm: []roster.Outcome{"W", "W", "W", "L", "W"},
			},
			Schedule: roster.WeeklySchedule{
				"monday": evening("08:00", "12:00"), "tuesday": evening("08:00", "12:00"),
				"wednesday": evening("08:00", "12:00"), "thursday": evening("08:00", "12:00"),
				"friday": evening("08:00", "12:00"), "saturday": off, "sunday": off,
			},
		},
	}
}
