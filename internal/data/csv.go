package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mevric/tpgkit/internal/domain/leaderboard"
	"github.com/mevric/tpgkit/internal/domain/model"
)

// Column names are load-bearing: downstream scripts key off them.

// WriteRoundCSV writes one scored round, one row per submission in rank
// order.
func WriteRoundCSV(w io.Writer, r model.Round) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"player", "lat", "lng", "distance", "bearing", "score", "rank"}); err != nil {
		return err
	}
	for _, sub := range r.Submissions {
		record := []string{
			sub.Player,
			formatFloat(sub.Location.Lat),
			formatFloat(sub.Location.Lng),
			formatFloat(sub.Distance),
			formatFloat(sub.Bearing),
			formatFloat(sub.Score),
			strconv.Itoa(sub.Rank),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePointsCSV writes the points leaderboard.
func WritePointsCSV(w io.Writer, rows []leaderboard.PointsRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"player", "total", "average", "rounds"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Player, formatFloat(row.Total), formatFloat(row.Average), strconv.Itoa(row.Rounds)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDistanceCSV writes the distance leaderboard (kilometres).
func WriteDistanceCSV(w io.Writer, rows []leaderboard.DistanceRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"player", "total", "average", "rounds"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Player, formatFloat(row.Total), formatFloat(row.Average), strconv.Itoa(row.Rounds)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMedalsCSV writes the medal leaderboard.
func WriteMedalsCSV(w io.Writer, rows []leaderboard.MedalRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"player", "gold", "silver", "bronze", "medal_score"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Player,
			strconv.Itoa(row.Gold),
			strconv.Itoa(row.Silver),
			strconv.Itoa(row.Bronze),
			strconv.Itoa(row.MedalScore),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteSeasonCSVs writes all three leaderboards through one call, used
// by the CLIs when an output directory is given.
func WriteSeasonCSVs(points, distance, medals io.Writer, season leaderboard.Season) error {
	if err := WritePointsCSV(points, season.Points); err != nil {
		return fmt.Errorf("points leaderboard: %w", err)
	}
	if err := WriteDistanceCSV(distance, season.Distance); err != nil {
		return fmt.Errorf("distance leaderboard: %w", err)
	}
	if err := WriteMedalsCSV(medals, season.Medals); err != nil {
		return fmt.Errorf("medals leaderboard: %w", err)
	}
	return nil
}
