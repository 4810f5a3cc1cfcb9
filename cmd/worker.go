package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/enterprise-admin/internal/notification"
	"github.com/frahmantamala/enterprise-admin/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
}

var mailWorkerCmd = &cobra.Command{
	Use:   "mail",
	Short: "Deliver queued email notifications over SMTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return startMailWorker()
	},
}

func init() {
	workerCmd.AddCommand(mailWorkerCmd)
}

func startMailWorker() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	if !cfg.Notification.Enabled {
		return fmt.Errorf("notifications are disabled; set notification.enabled to run the mail worker")
	}

	sender, err := notification.NewSMTPSender(cfg.Notification.SMTP)
	if err != nil {
		return err
	}

	conn, ch, err := notification.Dial(cfg.Notification.RabbitMQ.URL, cfg.Notification.RabbitMQ.Queue)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	deliveries, err := ch.Consume(cfg.Notification.RabbitMQ.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", cfg.Notification.RabbitMQ.Queue, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lg.Info("mail worker started", "queue", cfg.Notification.RabbitMQ.Queue)
	notification.NewConsumer(sender, lg).Run(ctx, deliveries)
	lg.Info("mail worker stopped")
	return nil
}
