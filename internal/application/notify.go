package application

import (
	"context"

	"github.com/orryin/orryin-backend/pkg/helpers"
	"github.com/orryin/orryin-backend/pkg/mailer"
)

// RabbitReviewNotifier publishes review jobs to the notify queue.
type RabbitReviewNotifier struct {
	Pub *helpers.RabbitPublisher
}

func NewRabbitReviewNotifier(pub *helpers.RabbitPublisher) *RabbitReviewNotifier {
	return &RabbitReviewNotifier{Pub: pub}
}

func (n *RabbitReviewNotifier) PublishReview(ctx context.Context, job mailer.ReviewJob) error {
	return n.Pub.PublishJSON(ctx, job)
}

var _ ReviewNotifier = (*RabbitReviewNotifier)(nil)
