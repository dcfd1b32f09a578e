package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/charsheet-api/internal/config"
	"github.com/KirkDiggler/charsheet-api/internal/redis"
	characterrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/character"
)

const (
	characterKeyPattern = "charsheet:*"
	userIndexPrefix     = "charsheet_index:user:"
)

var assumeYes bool

var checkDataCmd = &cobra.Command{
	Use:   "check-data",
	Short: "Scan stored character sheets for undecodable documents",
	Long: `Scan every character hash, report documents that no longer decode and
characters missing from their user index. Repairs need confirmation unless --yes is set.`,
	RunE: runCheckData,
}

func init() {
	checkDataCmd.Flags().BoolVar(&assumeYes, "yes", false, "Repair without asking")
	rootCmd.AddCommand(checkDataCmd)
}

// checkReport lists what a scan found
type checkReport struct {
	Checked   int
	Corrupted []string
	Unindexed []string
}

func runCheckData(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	client, err := redis.Connect(ctx, cfg.Redis.Addrs, &redis.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		UseTLS:   cfg.Redis.UseTLS,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	out := cmd.OutOrStdout()
	report, err := checkSheets(ctx, client, out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nChecked %d characters: %d corrupted, %d missing from their index\n",
		report.Checked, len(report.Corrupted), len(report.Unindexed))
	if len(report.Corrupted) == 0 && len(report.Unindexed) == 0 {
		return nil
	}

	if !assumeYes && !confirm(cmd.InOrStdin(), out) {
		fmt.Fprintln(out, "Aborted - no changes made")
		return nil
	}
	return repairSheets(ctx, client, report, out)
}

// checkSheets decodes every character hash the way the repository does
func checkSheets(ctx context.Context, client redis.Client, out io.Writer) (*checkReport, error) {
	report := &checkReport{}

	iter := client.Scan(ctx, 0, characterKeyPattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		report.Checked++

		fields, err := client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}

		c, err := characterrepo.DecodeFields(fields)
		if err != nil {
			fmt.Fprintf(out, "✗ %s does not decode: %v\n", key, err)
			report.Corrupted = append(report.Corrupted, key)
			continue
		}

		indexed, err := client.SIsMember(ctx, userIndexPrefix+c.UserID, c.CharacterID).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check index of %s: %w", key, err)
		}
		if !indexed {
			fmt.Fprintf(out, "✗ %s is missing from its user index\n", key)
			report.Unindexed = append(report.Unindexed, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return report, nil
}

// repairSheets deletes corrupted documents and re-indexes the rest
func repairSheets(ctx context.Context, client redis.Client, report *checkReport, out io.Writer) error {
	for _, key := range report.Corrupted {
		userID, characterID, ok := splitCharacterKey(key)
		if ok {
			if err := client.SRem(ctx, userIndexPrefix+userID, characterID).Err(); err != nil {
				return fmt.Errorf("failed to unindex %s: %w", key, err)
			}
		}
		if err := client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
		fmt.Fprintf(out, "Deleted %s\n", key)
	}

	for _, key := range report.Unindexed {
		userID, characterID, ok := splitCharacterKey(key)
		if !ok {
			continue
		}
		if err := client.SAdd(ctx, userIndexPrefix+userID, characterID).Err(); err != nil {
			return fmt.Errorf("failed to index %s: %w", key, err)
		}
		fmt.Fprintf(out, "Indexed %s\n", key)
	}
	return nil
}

// splitCharacterKey parses charsheet:{userId}:{characterId}
func splitCharacterKey(key string) (userID, characterID string, ok bool) {
	rest, found := strings.CutPrefix(key, "charsheet:")
	if !found {
		return "", "", false
	}
	userID, characterID, ok = strings.Cut(rest, ":")
	return userID, characterID, ok && userID != "" && characterID != ""
}

func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "\nRepair these entries? (yes/no): ")
	answer, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(answer) == "yes"
}
