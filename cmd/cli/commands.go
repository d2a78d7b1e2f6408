package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	suggestUserID string
	suggestLimit  int
	availClub     string
	availDate     string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(clubsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(featuredCmd)
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(metricsCmd)

	suggestCmd.Flags().StringVar(&suggestUserID, "user", "", "The player ID to rank candidates against")
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 0, "Maximum number of suggestions")
	availabilityCmd.Flags().StringVar(&availClub, "club", "", "The club ID to query")
	availabilityCmd.Flags().StringVar(&availDate, "date", "", "The date to query, YYYY-MM-DD")
	availabilityCmd.MarkFlagRequired("club")
	availabilityCmd.MarkFlagRequired("date")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "List the bookable clubs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clubs")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run an unfiltered compatibility search",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/search")
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Get suggested partners for a player",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if suggestUserID != "" {
			params.Set("user_id", suggestUserID)
		}
		if suggestLimit > 0 {
			params.Set("limit", fmt.Sprintf("%d", suggestLimit))
		}
		endpoint := "/suggestions"
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}
		return performGetRequest(endpoint)
	},
}

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "List the featured players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/featured")
	},
}

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "List the time slots for a club on a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("club_id", availClub)
		params.Set("date", availDate)
		return performGetRequest("/availability?" + params.Encode())
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
