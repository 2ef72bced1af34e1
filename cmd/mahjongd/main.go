package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mahjong/internal/bus"
	"mahjong/internal/config"
	"mahjong/internal/logging"
	"mahjong/internal/ratings"
	"mahjong/internal/store"
	"mahjong/internal/transport"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "mahjongd",
	Short: "mahjongd 麻將桌伺服器",
	Long:  `mahjongd 麻將桌伺服器`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "啟動桌伺服器 (websocket + nats + 持久化)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(configFile)
	},
}

var replayTableID string

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "重播已完成的對局紀錄",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayTableID == "" {
			return fmt.Errorf("replay: --table is required")
		}
		return runReplay(configFile, replayTableID)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "resource/application.yml", "resource file")
	replayCmd.Flags().StringVar(&replayTableID, "table", "", "table ID to replay")
	rootCmd.AddCommand(serveCmd, replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error happen: %#v\n", err)
		os.Exit(1)
	}
}

func runServe(configFile string) error {
	config.Init(configFile)
	logging.Init(config.Conf.AppName)
	logging.Info("配置文件: %+v", config.Conf)

	mongo := store.Connect()
	defer mongo.Close()
	repo := store.NewMongoRepository(mongo)

	ledger := ratings.Connect()

	readChan := make(chan []byte, 64)
	natsClient := bus.New(config.Conf.NatsConf.Subject, readChan)
	if err := natsClient.Run(config.Conf.NatsConf.Url); err != nil {
		logging.Fatal("mahjongd: nats run failed: %v", err)
	}
	defer natsClient.Close()

	hub := transport.NewHub()
	tables := transport.NewTableManager().WithRepository(repo).WithBus(natsClient)
	tables.RegisterHandlers(hub)

	go applyRatingAdjustments(readChan, ledger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	adminMux := http.NewServeMux()
	adminMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	server := &http.Server{Addr: fmt.Sprintf("0.0.0.0:%d", config.Conf.WsPort), Handler: mux}
	adminServer := &http.Server{Addr: fmt.Sprintf("0.0.0.0:%d", config.Conf.MetricPort), Handler: adminMux}

	g.Go(func() error {
		logging.Info("mahjongd: websocket listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logging.Info("mahjongd: admin listening on %s", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		_ = server.Shutdown(context.Background())
		_ = adminServer.Shutdown(context.Background())
		return nil
	})

	if err := g.Wait(); err != nil {
		logging.Error("mahjongd: 發生異常: %v", err)
		return err
	}
	return nil
}

// runReplay prints a completed table's rounds in order, the way a
// spectator tool would walk a saved game back for review. It connects
// only to Mongo — no websocket hub, no nats bus, no ratings ledger.
func runReplay(configFile, tableID string) error {
	config.Init(configFile)
	logging.Init(config.Conf.AppName)

	mongo := store.Connect()
	defer mongo.Close()
	repo := store.NewMongoRepository(mongo)

	ctx := context.Background()
	game, err := repo.FindGameRecordByTable(ctx, tableID)
	if err != nil {
		return fmt.Errorf("replay: find game record for table %s: %w", tableID, err)
	}

	rounds, err := repo.FindRoundRecords(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("replay: find round records for table %s: %w", tableID, err)
	}

	logging.Info("mahjongd: replaying table %s, %d round(s)", tableID, len(rounds))
	for _, round := range rounds {
		logging.Info("round %d (dealer seat %d, wind %s): %d event(s)",
			round.RoundNumber, round.DealerIndex, round.RoundWind, len(round.Events))
		if round.Result == nil {
			continue
		}
		logging.Info("  end=%s payments=%v", round.Result.EndType, round.Result.Payments)
		for _, claim := range round.Result.Claims {
			logging.Info("  seat %d won on %s with %d tai: %v", claim.WinnerSeat, claim.WinTile, claim.Tai, claim.Yaku)
		}
	}
	return nil
}

// applyRatingAdjustments consumes the server's own HandFinished events off
// the bus and nudges each seat's rating, keyed by seat number since seats
// aren't yet mapped to account IDs at this layer.
func applyRatingAdjustments(readChan <-chan []byte, ledger *ratings.Ledger) {
	for data := range readChan {
		var ev bus.HandFinished
		if err := json.Unmarshal(data, &ev); err != nil {
			logging.Warn("mahjongd: bad hand-finished payload: %v", err)
			continue
		}
		var userIDs [4]string
		for seat := range userIDs {
			userIDs[seat] = ev.TableID + ":" + strconv.Itoa(seat)
		}
		if err := ledger.ApplyPayments(context.Background(), userIDs, ev.Payments, 4); err != nil {
			logging.Warn("mahjongd: rating adjustment failed for table %s: %v", ev.TableID, err)
		}
	}
}
