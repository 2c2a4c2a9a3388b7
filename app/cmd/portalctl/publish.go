package main

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/pkg/aws"
	"backend/insurance-platform/app/pkg/sqs"
	"backend/insurance-platform/app/pkg/worker"
)

type publishOptions struct {
	status string
	amount string
	reason string
}

// newPublishCommand sends a claim-management event to the claim event queue,
// the same message the claims back office would send.
func newPublishCommand() *cobra.Command {
	opts := &publishOptions{}

	cmd := &cobra.Command{
		Use:       "publish <review_started|settled> <claim-id>",
		Short:     "Publish a claim event to the claim event queue",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"review_started", "settled"},
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := opts.message(args[0], args[1])
			if err != nil {
				return err
			}

			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			defer env.close()

			if !env.cfg.AwsConfig.SQSEnabled() {
				return fmt.Errorf("no claim event queue configured")
			}
			api, err := aws.NewSQSClient(cmd.Context(), env.cfg.AwsConfig)
			if err != nil {
				return err
			}

			client := sqs.NewClient(api, env.cfg.AwsConfig.Sqs, env.logger)
			out, err := client.SendMessage(cmd.Context(), env.cfg.AwsConfig.Sqs.QueueURLs.ClaimEventQueue, string(body), nil)
			if err != nil {
				return err
			}

			env.logger.Info("claim event published", zap.String("message_id", *out.MessageId))
			fmt.Fprintln(cmd.OutOrStdout(), *out.MessageId)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.status, "status", string(claim.Approved), "settled status: approved or rejected")
	cmd.Flags().StringVar(&opts.amount, "amount", "", "settlement amount of an approved claim")
	cmd.Flags().StringVar(&opts.reason, "reason", "", "rejection reason")
	return cmd
}

func (o *publishOptions) message(event, claimID string) ([]byte, error) {
	var msg struct {
		Type    job.EventType `json:"type"`
		Payload any           `json:"payload"`
	}

	switch event {
	case "review_started":
		msg.Type = job.ClaimReviewStarted
		msg.Payload = worker.ReviewClaimPayload{ClaimID: claimID}
	case "settled":
		payload := worker.SettleClaimPayload{ClaimID: claimID, Status: claim.Status(o.status)}
		if !payload.Status.IsTerminal() {
			return nil, fmt.Errorf("--status must be approved or rejected")
		}
		if o.amount != "" {
			amount, err := decimal.NewFromString(o.amount)
			if err != nil {
				return nil, fmt.Errorf("--amount: %w", err)
			}
			payload.SettlementAmount = &amount
		}
		if o.reason != "" {
			payload.RejectionReason = &o.reason
		}
		msg.Type = job.ClaimSettled
		msg.Payload = payload
	default:
		return nil, fmt.Errorf("unknown event %q", event)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	// Refuse what the listener would drop
	if _, err := sqs.ParseMessage(string(body)); err != nil {
		return nil, err
	}
	return body, nil
}
