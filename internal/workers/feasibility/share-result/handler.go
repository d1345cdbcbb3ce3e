package shareresult

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/sony/gobreaker"

	awsclients "feasibility-workers/internal/common/aws"
	"feasibility-workers/internal/common/camunda"
	"feasibility-workers/internal/common/errors"
	"feasibility-workers/internal/common/logger"
	"feasibility-workers/internal/common/resilience"
	"feasibility-workers/internal/common/validation"
	"feasibility-workers/internal/share"
	"feasibility-workers/pkg/registry"
)

const TaskType = "share-result"

const (
	channelEmail = "email"
	channelSMS   = "sms"
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config       *Config
	builder      *share.Builder
	sesClient    SESService
	snsClient    SNSService
	emailBreaker *gobreaker.CircuitBreaker
	smsBreaker   *gobreaker.CircuitBreaker
	activity     *registry.Activity
	errors       *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the share worker. Either client may be nil, in which
// case that channel only produces its link.
func NewHandler(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) (*Handler, error) {
	activity, err := camunda.LookupActivity(TaskType)
	if err != nil {
		return nil, err
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		builder:      share.NewBuilder(config.BrandName),
		sesClient:    sesClient,
		snsClient:    snsClient,
		emailBreaker: resilience.NewCircuitBreaker("share-email", log),
		smsBreaker:   resilience.NewCircuitBreaker("share-sms", log),
		activity:     activity,
		errors:       errors.NewErrorHandler(log),
		logger:       log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job, h.activity, &input); err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"error": err})
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	pageURL := strings.TrimSpace(input.PageURL)
	if pageURL == "" {
		pageURL = h.config.PageURL
	}

	email := strings.TrimSpace(input.Email)
	if email != "" && !validation.ValidateEmail(email) {
		return nil, errors.NewShareRecipientInvalidError(channelEmail, email)
	}
	phone := normalizePhone(input.Phone)
	if phone != "" && !validation.ValidatePhone(phone) {
		return nil, errors.NewShareRecipientInvalidError(channelSMS, input.Phone)
	}

	output := &Output{Links: h.builder.Links(input.BusinessName, pageURL)}

	if email != "" && h.config.EmailEnabled && h.sesClient != nil {
		if err := h.sendEmail(ctx, email, input.BusinessName, pageURL); err != nil {
			return nil, dispatchError(channelEmail, err)
		}
		output.EmailSent = true
	}

	if phone != "" && h.config.SMSEnabled && h.snsClient != nil {
		if err := h.sendSMS(ctx, phone, input.BusinessName, pageURL); err != nil {
			return nil, dispatchError(channelSMS, err)
		}
		output.SMSSent = true
	}

	h.logger.Info("share links built", map[string]interface{}{
		"emailSent": output.EmailSent,
		"smsSent":   output.SMSSent,
	})

	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, to, businessName, pageURL string) error {
	msg := awsclients.TextEmail(h.config.FromEmail, to, h.builder.Subject(), h.builder.EmailBody(businessName, pageURL))
	return resilience.Call(h.emailBreaker, func() error {
		_, err := h.sesClient.SendEmail(ctx, msg)
		return err
	})
}

func (h *Handler) sendSMS(ctx context.Context, phone, businessName, pageURL string) error {
	msg := awsclients.SMS(phone, h.builder.ShortBody(businessName, pageURL), h.config.SenderID)
	return resilience.Call(h.smsBreaker, func() error {
		_, err := h.snsClient.Publish(ctx, msg)
		return err
	})
}

func dispatchError(channel string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewShareDispatchTimeoutError(channel)
	}
	return errors.NewShareDispatchFailedError(channel, err)
}

// normalizePhone drops the separators people type into phone numbers.
func normalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
