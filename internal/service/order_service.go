package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"groceryDeliveryManagement/internal/assign"
	"groceryDeliveryManagement/internal/auth"
	"groceryDeliveryManagement/internal/earnings"
	"groceryDeliveryManagement/internal/geo"
	"groceryDeliveryManagement/internal/geocode"
	"groceryDeliveryManagement/internal/notify"
	"groceryDeliveryManagement/models"
	"groceryDeliveryManagement/repository"
)

// OrderService orchestrates order acceptance, agent assignment and the
// delivery lifecycle. Collaborator failures on the degradation paths
// (settings, earning logs, geocoding, event publishing) are logged and never
// surfaced as errors.
type OrderService struct {
	Orders   repository.OrderRepositoryI
	Agents   repository.AgentRepositoryI
	Sellers  repository.SellerRepositoryI
	Products repository.ProductRepositoryI
	Settings repository.SettingsRepositoryI
	Earnings repository.EarningRepositoryI
	Geocoder geocode.Client
	Events   notify.Publisher
	Log      *zap.Logger
}

// AcceptResult is the caller-facing outcome of an order acceptance.
type AcceptResult struct {
	Order         *models.Order      `json:"order"`
	Assignment    assign.Result      `json:"assignment"`
	PickupAddress string             `json:"pickup_address,omitempty"`
	Earnings      earnings.Breakdown `json:"earnings"`
}

// loadOwnedOrder fetches the order and verifies the seller owns at least one
// of its line items.
func (s *OrderService) loadOwnedOrder(ctx context.Context, orderID, sellerID int64) (*models.Order, error) {
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get order: %v", err)
	}
	if order == nil {
		return nil, status.Error(codes.NotFound, "order not found")
	}
	if len(order.Items) == 0 {
		return nil, status.Error(codes.PermissionDenied, "order has no items to validate for seller")
	}
	owns, err := s.Products.SellerOwnsAny(ctx, orderID, sellerID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "validate ownership: %v", err)
	}
	if !owns {
		return nil, status.Error(codes.PermissionDenied, "order does not include any items from this seller")
	}
	return order, nil
}

// resolvePickup determines the pickup point and address for the order:
// seller store location first, falling back to the order's pickup point and
// then its delivery point. Geocoding failures fall through to the
// coordinate-string address.
func (s *OrderService) resolvePickup(ctx context.Context, order *models.Order, sellerID int64) (geocode.Resolved, *models.Seller) {
	var seller *models.Seller
	if s.Sellers != nil {
		var err error
		seller, err = s.Sellers.GetByID(ctx, sellerID)
		if err != nil {
			s.Log.Warn("seller lookup failed during pickup resolution", zap.Int64("seller_id", sellerID), zap.Error(err))
			seller = nil
		}
	}

	src := geocode.Source{}
	var point *geo.Point
	if seller != nil {
		src.Address = seller.Address
		src.PlaceID = seller.PlaceID
		point = seller.Location()
	}
	if point == nil {
		point = order.PickupLocation()
	}
	if point == nil {
		point = order.DeliveryLocation()
	}
	src.Point = point
	return geocode.Resolve(ctx, s.Geocoder, src), seller
}

// AcceptOrder confirms the order on behalf of the seller and offers it to a
// delivery agent chosen by the tiered policy. Capacity exhaustion is not an
// error: the order is confirmed with its delivery leg left pending and the
// result reports Assigned false.
func (s *OrderService) AcceptOrder(ctx context.Context, orderID, sellerID int64) (*AcceptResult, error) {
	order, err := s.loadOwnedOrder(ctx, orderID, sellerID)
	if err != nil {
		return nil, err
	}

	pickup, _ := s.resolvePickup(ctx, order, sellerID)

	agents, err := s.Agents.ListAvailable(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list agents: %v", err)
	}

	// Walk candidates in selection order until an atomic slot acquire
	// succeeds. A lost race just moves on to the next candidate.
	result := assign.Result{Assigned: false, Reason: assign.ReasonNoAgents}
	for _, candidate := range assign.Rank(agents, pickup.Point) {
		ok, err := s.Agents.AcquireSlot(ctx, candidate.ID)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "acquire agent slot: %v", err)
		}
		if !ok {
			continue
		}
		if err := s.Orders.AssignAgent(ctx, orderID, candidate.ID); err != nil {
			_ = s.Agents.ReleaseSlot(ctx, candidate.ID)
			return nil, status.Errorf(codes.Internal, "assign agent: %v", err)
		}
		result.Assigned = true
		result.AgentID = candidate.ID
		if km, ok := geo.DistanceKm(candidate.Location(), pickup.Point); ok {
			result.DistanceKm = &km
			result.Reason = assign.ReasonNearest
		} else {
			result.Reason = assign.ReasonLeastLoaded
		}
		break
	}

	if err := s.Orders.UpdateStatus(ctx, orderID, models.OrderStatusConfirmed); err != nil {
		return nil, status.Errorf(codes.Internal, "confirm order: %v", err)
	}

	order, err = s.Orders.GetByID(ctx, orderID)
	if err != nil || order == nil {
		return nil, status.Errorf(codes.Internal, "reload order: %v", err)
	}

	breakdown := s.previewEarnings(ctx, order)

	if result.Assigned {
		if err := s.Events.PublishAssignment(ctx, orderID, result.AgentID); err != nil {
			s.Log.Warn("assignment publish failed", zap.Int64("order_id", orderID), zap.Error(err))
		}
	} else {
		s.Log.Info("order confirmed without agent, queued for delivery",
			zap.Int64("order_id", orderID), zap.Int("available_agents", len(agents)))
		if err := s.Events.PublishOrderUpdate(ctx, orderID, string(order.Status)); err != nil {
			s.Log.Warn("order update publish failed", zap.Int64("order_id", orderID), zap.Error(err))
		}
	}

	return &AcceptResult{
		Order:         order,
		Assignment:    result,
		PickupAddress: pickup.Address,
		Earnings:      breakdown,
	}, nil
}

// RejectOrder cancels the order on behalf of the seller with a mandatory
// reason. Any assigned agent is freed.
func (s *OrderService) RejectOrder(ctx context.Context, orderID, sellerID int64, reason string) (*models.Order, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < 3 {
		return nil, status.Error(codes.InvalidArgument, "rejection reason is required (min 3 chars)")
	}
	order, err := s.loadOwnedOrder(ctx, orderID, sellerID)
	if err != nil {
		return nil, err
	}
	if models.TerminalDelivery(order.DeliveryStatus) {
		return nil, status.Errorf(codes.FailedPrecondition, "cannot reject order with delivery status %s", order.DeliveryStatus)
	}

	if order.DeliveryAgentID != nil {
		if err := s.Agents.ReleaseSlot(ctx, *order.DeliveryAgentID); err != nil {
			return nil, status.Errorf(codes.Internal, "release agent slot: %v", err)
		}
	}
	if err := s.Orders.CancelDelivery(ctx, orderID, reason, "seller"); err != nil {
		return nil, status.Errorf(codes.Internal, "cancel delivery: %v", err)
	}
	if err := s.Orders.UpdateStatus(ctx, orderID, models.OrderStatusRejected); err != nil {
		return nil, status.Errorf(codes.Internal, "reject order: %v", err)
	}

	order, err = s.Orders.GetByID(ctx, orderID)
	if err != nil || order == nil {
		return nil, status.Errorf(codes.Internal, "reload order: %v", err)
	}
	if err := s.Events.PublishOrderUpdate(ctx, orderID, string(order.Status)); err != nil {
		s.Log.Warn("order update publish failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
	return order, nil
}

// Reassign forces the order onto a new agent. Administrative operation:
// valid from any non-terminal delivery state, releasing the old agent's slot
// and acquiring the new one atomically.
func (s *OrderService) Reassign(ctx context.Context, p *auth.Principal, orderID, newAgentID int64) (*models.Order, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, status.Error(codes.PermissionDenied, "reassignment requires admin")
	}
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get order: %v", err)
	}
	if order == nil {
		return nil, status.Error(codes.NotFound, "order not found")
	}
	if models.TerminalDelivery(order.DeliveryStatus) {
		return nil, status.Errorf(codes.FailedPrecondition, "cannot reassign order with delivery status %s", order.DeliveryStatus)
	}
	if order.DeliveryAgentID != nil && *order.DeliveryAgentID == newAgentID {
		return nil, status.Error(codes.FailedPrecondition, "order already assigned to this agent")
	}

	agent, err := s.Agents.GetByID(ctx, newAgentID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get agent: %v", err)
	}
	if agent == nil {
		return nil, status.Error(codes.NotFound, "agent not found")
	}
	if !agent.Approved || !agent.Active {
		return nil, status.Error(codes.FailedPrecondition, "agent is not eligible for assignment")
	}

	ok, err := s.Agents.AcquireSlot(ctx, newAgentID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "acquire agent slot: %v", err)
	}
	if !ok {
		return nil, status.Error(codes.FailedPrecondition, "agent is at capacity")
	}
	if order.DeliveryAgentID != nil {
		if err := s.Agents.ReleaseSlot(ctx, *order.DeliveryAgentID); err != nil {
			return nil, status.Errorf(codes.Internal, "release agent slot: %v", err)
		}
	}
	if err := s.Orders.AssignAgent(ctx, orderID, newAgentID); err != nil {
		return nil, status.Errorf(codes.Internal, "assign agent: %v", err)
	}

	if err := s.Events.PublishAssignment(ctx, orderID, newAgentID); err != nil {
		s.Log.Warn("assignment publish failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
	order, err = s.Orders.GetByID(ctx, orderID)
	if err != nil || order == nil {
		return nil, status.Errorf(codes.Internal, "reload order: %v", err)
	}
	return order, nil
}

// AdvanceDelivery moves the delivery leg forward on behalf of its assigned
// agent. On delivery completion the COD payment flips to paid, the agent's
// slot is freed, and earning logs are persisted (non-fatally).
func (s *OrderService) AdvanceDelivery(ctx context.Context, agentID, orderID int64, next models.DeliveryStatus) (*models.Order, error) {
	if !agentAdvances[next] {
		return nil, status.Errorf(codes.InvalidArgument, "agents cannot set delivery status %s", next)
	}
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get order: %v", err)
	}
	if order == nil {
		return nil, status.Error(codes.NotFound, "order not found")
	}
	if order.DeliveryAgentID == nil || *order.DeliveryAgentID != agentID {
		return nil, status.Error(codes.PermissionDenied, "order is not assigned to this agent")
	}
	if !CanTransition(order.DeliveryStatus, next) {
		return nil, status.Errorf(codes.FailedPrecondition, "cannot move delivery from %s to %s", order.DeliveryStatus, next)
	}

	if err := s.Orders.UpdateDeliveryStatus(ctx, orderID, next); err != nil {
		return nil, status.Errorf(codes.Internal, "update delivery status: %v", err)
	}
	if next == models.DeliveryStatusDelivered {
		if err := s.Orders.UpdatePaymentStatus(ctx, orderID, models.PaymentStatusPaid); err != nil {
			return nil, status.Errorf(codes.Internal, "update payment status: %v", err)
		}
		if err := s.Orders.UpdateStatus(ctx, orderID, models.OrderStatusDelivered); err != nil {
			return nil, status.Errorf(codes.Internal, "update order status: %v", err)
		}
		if err := s.Agents.CompleteDelivery(ctx, agentID); err != nil {
			return nil, status.Errorf(codes.Internal, "complete delivery: %v", err)
		}
		s.finalizeEarnings(ctx, orderID, agentID)
	}

	order, err = s.Orders.GetByID(ctx, orderID)
	if err != nil || order == nil {
		return nil, status.Errorf(codes.Internal, "reload order: %v", err)
	}
	if err := s.Events.PublishOrderUpdate(ctx, orderID, string(next)); err != nil {
		s.Log.Warn("order update publish failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
	return order, nil
}

// EarningsPreview computes the earnings breakdown for an order, preferring
// persisted earning records when present.
func (s *OrderService) EarningsPreview(ctx context.Context, orderID int64) (*earnings.Breakdown, error) {
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get order: %v", err)
	}
	if order == nil {
		return nil, status.Error(codes.NotFound, "order not found")
	}
	b := s.previewEarnings(ctx, order)
	return &b, nil
}

// previewEarnings is the non-authoritative calculation attached to accept
// responses; every collaborator failure inside degrades to defaults.
func (s *OrderService) previewEarnings(ctx context.Context, order *models.Order) earnings.Breakdown {
	settings := earnings.ResolveSettings(ctx, s.Settings, s.Log)
	totals, err := s.Orders.SellerTotals(ctx, order.ID)
	if err != nil {
		s.Log.Warn("seller totals read failed", zap.Int64("order_id", order.ID), zap.Error(err))
		totals = nil
	}
	calc := earnings.Calculator{Logs: s.Earnings, Log: s.Log}
	return calc.Compute(ctx, order, totals, settings)
}

// finalizeEarnings persists the authoritative earning records at delivery
// completion. Failures are logged only; delivery completion never fails on
// bookkeeping.
func (s *OrderService) finalizeEarnings(ctx context.Context, orderID, agentID int64) {
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil || order == nil {
		s.Log.Warn("earning log persist skipped, order unavailable", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	settings := earnings.ResolveSettings(ctx, s.Settings, s.Log)
	totals, err := s.Orders.SellerTotals(ctx, orderID)
	if err != nil {
		s.Log.Warn("earning log persist skipped, totals unavailable", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	calc := earnings.Calculator{Log: s.Log} // no log preference: recompute
	breakdown := calc.Compute(ctx, order, totals, settings)

	for _, se := range breakdown.Sellers {
		if err := s.Earnings.UpsertSeller(ctx, orderID, se.SellerID, se.ItemTotal, se.Commission, se.NetEarning); err != nil {
			s.Log.Warn("seller earning log persist failed", zap.Int64("order_id", orderID), zap.Int64("seller_id", se.SellerID), zap.Error(err))
		}
	}
	if breakdown.Agent != nil && breakdown.Agent.NetEarning > 0 {
		if err := s.Earnings.UpsertAgent(ctx, orderID, agentID, breakdown.Agent.DeliveryCharge, breakdown.Agent.NetEarning); err != nil {
			s.Log.Warn("agent earning log persist failed", zap.Int64("order_id", orderID), zap.Int64("agent_id", agentID), zap.Error(err))
		}
	}
}
