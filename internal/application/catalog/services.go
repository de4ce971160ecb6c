package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/metrics"
)

// AIService is one subscribable offering of the service catalog.
type AIService struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Price       string `json:"price"`
}

var services = []AIService{
	{ID: "predictive-analytics", Title: "Predictive Analytics", Description: "Advanced forecasting models for revenue, churn, and market trends.", Icon: "zap", Category: "Analytics", Status: "Available", Price: "$499/mo"},
	{ID: "nlp-legal", Title: "NLP for Legal", Description: "Contract analysis, clause extraction, and regulatory risk detection.", Icon: "file-text", Category: "Legal", Status: "Popular", Price: "$799/mo"},
	{ID: "automated-procurement", Title: "Automated Procurement", Description: "AI-driven vendor selection and purchase order optimization.", Icon: "search", Category: "Operations", Status: "Available", Price: "$599/mo"},
	{ID: "code-security-audit", Title: "Code Security Audit", Description: "Real-time vulnerability scanning and dependency risk assessment.", Icon: "code", Category: "Development", Status: "Available", Price: "$399/mo"},
	{ID: "fraud-detection-suite", Title: "Fraud Detection Suite", Description: "Real-time anomaly detection for B2B transactions and access logs.", Icon: "shield-check", Category: "Security", Status: "Critical", Price: "$899/mo"},
	{ID: "custom-llm-training", Title: "Custom LLM Training", Description: "Fine-tune models on your proprietary business documentation.", Icon: "brain", Category: "AI Suite", Status: "Bespoke", Price: "Custom"},
}

// Profile is what the catalog page shows about the signed-in user.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessType string `json:"business_type"`
}

// SubscribeResult acknowledges a subscription request.
type SubscribeResult struct {
	ServiceID string `json:"service_id"`
	Message   string `json:"message"`
}

type Service struct {
	Logger *zap.Logger
}

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// List returns a copy of the catalog in display order.
func (s *Service) List() []AIService {
	return append([]AIService(nil), services...)
}

func (s *Service) Get(id string) (AIService, error) {
	for _, svc := range services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return AIService{}, fmt.Errorf("service %q: %w", id, domain.ErrNotFound)
}

// Subscribe records a subscription request. Requests are only acknowledged
// and counted; nothing is provisioned.
func (s *Service) Subscribe(ctx context.Context, user *identity.User, id string) (SubscribeResult, error) {
	if user == nil {
		return SubscribeResult{}, identity.ErrUnauthenticated
	}
	if err := ctx.Err(); err != nil {
		return SubscribeResult{}, err
	}
	svc, err := s.Get(id)
	if err != nil {
		return SubscribeResult{}, err
	}
	metrics.SubscriptionsTotal.WithLabelValues(svc.ID).Inc()
	s.log().Info("subscription requested", zap.String("user_id", user.ID), zap.String("service_id", svc.ID))
	return SubscribeResult{ServiceID: svc.ID, Message: "Subscription request sent for " + svc.Title}, nil
}

func (s *Service) Profile(user *identity.User) (Profile, error) {
	if user == nil {
		return Profile{}, identity.ErrUnauthenticated
	}
	bt := user.BusinessType
	if bt == "" {
		bt = identity.DefaultBusinessType
	}
	return Profile{ID: user.ID, Name: user.Name(), Email: user.Email, BusinessType: bt}, nil
}
