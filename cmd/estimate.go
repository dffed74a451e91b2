package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallerix/scheduling/core/estimate"
	"github.com/tallerix/scheduling/core/model"
	"github.com/tallerix/scheduling/infra/logger"
)

var (
	itemsPath    string
	technicianID string
	createdAtStr string
	workloadHrs  float64
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Compute a one-shot delivery estimate from an items file",
	RunE:  runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&itemsPath, "items", "i", "", "JSON file with order items and support technicians")
	estimateCmd.Flags().StringVarP(&technicianID, "technician", "t", "", "primary technician id")
	estimateCmd.Flags().StringVar(&createdAtStr, "created-at", "", "creation instant (RFC3339, defaults to now)")
	estimateCmd.Flags().Float64Var(&workloadHrs, "workload", 0, "committed backlog hours")
	_ = estimateCmd.MarkFlagRequired("items")
	rootCmd.AddCommand(estimateCmd)
}

// estimateFile is the expected shape of the --items JSON file.
type estimateFile struct {
	Items    []model.OrderItem         `json:"items"`
	Support  []model.SupportTechnician `json:"support"`
	Schedule *model.WorkSchedule       `json:"schedule"`
}

func runEstimate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(itemsPath)
	if err != nil {
		return fmt.Errorf("read items: %w", err)
	}
	var in estimateFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode items: %w", err)
	}

	createdAt := time.Now()
	if createdAtStr != "" {
		createdAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return fmt.Errorf("parse created-at: %w", err)
		}
	}

	sched := model.DefaultSchedule()
	origin := estimate.ScheduleDefault
	if in.Schedule != nil {
		sched = *in.Schedule
		origin = estimate.ScheduleConfigured
	}

	est, err := estimate.New(logger.New("estimate-command"), 0).Estimate(estimate.Input{
		Items:         in.Items,
		Schedule:      sched,
		Support:       in.Support,
		CreatedAt:     createdAt,
		WorkloadHours: workloadHrs,
	})
	if err != nil {
		return fmt.Errorf("estimate: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "technician: %s (schedule %s)\n", technicianID, origin)
	fmt.Fprintf(out, "delivery:   %s %s\n", est.DeliveryDate(), est.DeliveryTime())
	fmt.Fprintf(out, "effective:  %.2fh (shared %d, usable=%v)\n", est.EffectiveHours, est.SharedServicesCount, est.CanUseSharedTime)
	fmt.Fprintf(out, "breakdown:  %s\n", est.Breakdown)
	return nil
}
