package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"postboard/internal/domain"
)

// NotificationPublisher publica eventos de interacción para fan-out.
type NotificationPublisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// RedisNotificationService publica y consume notificaciones por un canal
// pub/sub de redis. La publicación es best effort: un fallo se registra
// y nunca hace fallar la operación que lo originó.
type RedisNotificationService struct {
	logger  *zap.Logger
	client  *redis.Client
	channel string
}

func NewRedisNotificationService(logger *zap.Logger, client *redis.Client, channel string) *RedisNotificationService {
	if channel == "" {
		channel = "notification-topic"
	}
	return &RedisNotificationService{
		logger:  logger,
		client:  client,
		channel: channel,
	}
}

func (s *RedisNotificationService) Publish(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, s.channel, payload).Err()
}

// identityResolver es lo mínimo que el consumer necesita del UserService.
type identityResolver interface {
	ResolveByID(ctx context.Context, id string) (domain.User, error)
}

// Consume se suscribe al canal y procesa mensajes hasta que el contexto
// se cancela. Payloads malformados se registran y se descartan.
func (s *RedisNotificationService) Consume(ctx context.Context, resolver identityResolver) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.handleMessage(ctx, resolver, msg.Payload)
		}
	}
}

func (s *RedisNotificationService) handleMessage(ctx context.Context, resolver identityResolver, payload string) {
	var n domain.Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		s.logger.Warn("malformed notification payload", zap.Error(err))
		return
	}

	sender, err := resolver.ResolveByID(ctx, n.SenderID)
	if err != nil {
		s.logger.Warn("notification sender not resolvable", zap.String("sender_id", n.SenderID), zap.Error(err))
		return
	}
	receiver, err := resolver.ResolveByID(ctx, n.ReceiverID)
	if err != nil {
		s.logger.Warn("notification receiver not resolvable", zap.String("receiver_id", n.ReceiverID), zap.Error(err))
		return
	}

	s.logger.Info("notification",
		zap.String("sender", sender.Email),
		zap.String("receiver", receiver.Email),
		zap.String("type", string(n.Type)),
	)
}
