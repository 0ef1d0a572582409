package contracts

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/contracts/date"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultRegistryURL is the public procurement contracts API.
	DefaultRegistryURL = "https://contratos.comprasnet.gov.br/api"
	// DefaultDelay is the minimum delay between two calls reaching the registry.
	DefaultDelay = 1500 * time.Millisecond
)

// Registry is a client of the procurement contracts registry.
type Registry struct {
	BaseURL string
	Client  *http.Client
	Logger  *zap.Logger
}

// NewRegistry returns a registry client with a daily disk cache, pacing the
// calls that reach the network by DefaultDelay.
func NewRegistry(baseURL string, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	limiter := rate.NewLimiter(rate.Every(DefaultDelay), 1)
	dir := filepath.Join(os.TempDir(), "contratos-cache")
	return &Registry{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  daily(dir, limiter, logger),
		Logger:  logger,
	}
}

func (r *Registry) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// get fetches an endpoint, either a path relative to the base URL or an absolute link.
func (r *Registry) get(ctx context.Context, endpoint string, v any) error {
	addr := endpoint
	if !strings.HasPrefix(endpoint, "http") {
		addr = r.BaseURL + endpoint
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	if err := jwget(ctx, client, addr, v); err != nil {
		return fmt.Errorf("registry %s: %w", endpoint, err)
	}
	return nil
}

// ListContracts returns the contracts of a management unit (UG).
func (r *Registry) ListContracts(ctx context.Context, ug string) ([]RawContract, error) {
	var list []RawContract
	err := r.get(ctx, "/contrato/ug/"+ug, &list)
	return list, err
}

// History returns the history behind a contract's history link.
func (r *Registry) History(ctx context.Context, link string) ([]RawEvent, error) {
	var list []RawEvent
	err := r.get(ctx, link, &list)
	return list, err
}

// Commitments returns the commitments behind a contract's commitments link.
func (r *Registry) Commitments(ctx context.Context, link string) ([]RawCommitment, error) {
	var list []RawCommitment
	err := r.get(ctx, link, &list)
	return list, err
}

// Collect fetches the contracts of a management unit with their histories and
// commitments. limit keeps only the first contracts when positive.
//
// A failing history or commitments link is logged and recorded as empty.
func (r *Registry) Collect(ctx context.Context, ug string, limit int) (*Snapshot, error) {
	log := r.logger()
	contracts, err := r.ListContracts(ctx, ug)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(contracts) > limit {
		contracts = contracts[:limit]
	}
	log.Info("contracts listed", zap.String("ug", ug), zap.Int("count", len(contracts)))

	s := NewSnapshot()
	s.Contracts = contracts
	for _, c := range contracts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := c.Key()
		log.Debug("collecting", zap.String("contract", id))

		s.Histories[id] = []RawEvent{}
		if c.Links.History != "" {
			h, err := r.History(ctx, c.Links.History)
			if err != nil {
				log.Warn("history error", zap.String("contract", id), zap.Error(err))
			} else {
				s.Histories[id] = h
			}
		}

		s.Commitments[id] = []RawCommitment{}
		if c.Links.Commitments != "" {
			cs, err := r.Commitments(ctx, c.Links.Commitments)
			if err != nil {
				log.Warn("commitments error", zap.String("contract", id), zap.Error(err))
			} else {
				s.Commitments[id] = cs
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Invoice is a supplier invoice ("fatura") of a contract.
type Invoice struct {
	Number    string
	Issued    date.Date
	Due       date.Date
	Value     Amount
	Net       Amount
	Reference string // MM/YYYY
	Situation string
}

// invoice fields, the registry serves more than these.
const (
	invoiceNumber    = "$.numero"
	invoiceIssued    = "$.emissao"
	invoiceDue       = "$.vencimento"
	invoiceValue     = "$.valor"
	invoiceNet       = "$.valorliquido"
	invoiceMonth     = "$.mesref"
	invoiceYear      = "$.anoref"
	invoiceSituation = "$.situacao"
)

// Invoices returns the invoices behind a contract's invoices link.
func (r *Registry) Invoices(ctx context.Context, link string) ([]Invoice, error) {
	var jobj []any
	if err := r.get(ctx, link, &jobj); err != nil {
		return nil, err
	}
	invoices := make([]Invoice, 0, len(jobj))
	for i, item := range jobj {
		inv, err := decodeInvoice(item)
		if err != nil {
			return nil, fmt.Errorf("invoice %d: %w", i, err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func decodeInvoice(item any) (inv Invoice, err error) {
	inv.Number = pick(item, invoiceNumber)
	inv.Situation = pick(item, invoiceSituation)
	if month, year := pick(item, invoiceMonth), pick(item, invoiceYear); month != "" || year != "" {
		inv.Reference = month + "/" + year
	}
	if inv.Issued, err = ParseOptionalDate("emissao", pick(item, invoiceIssued)); err != nil {
		return inv, err
	}
	if inv.Due, err = ParseOptionalDate("vencimento", pick(item, invoiceDue)); err != nil {
		return inv, err
	}
	if inv.Value, err = invoiceAmount("valor", pickValue(item, invoiceValue)); err != nil {
		return inv, err
	}
	if inv.Net, err = invoiceAmount("valorliquido", pickValue(item, invoiceNet)); err != nil {
		return inv, err
	}
	return inv, nil
}

// invoiceAmount parses an amount either as a JSON number or as Brazilian formatted text.
func invoiceAmount(field string, jval any) (Amount, error) {
	if v, ok := jval.(float64); ok {
		return A(v), nil
	}
	return parseAmountField(field, jsonText(jval))
}

// pickValue returns the JSON value at path, or nil when absent.
func pickValue(obj any, path string) any {
	jval, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil
		}
		jval = jlist[0]
	}
	return jval
}

// pick returns the value at path as text, or "" when absent.
func pick(obj any, path string) string { return jsonText(pickValue(obj, path)) }

// jsonText renders a JSON scalar as text.
func jsonText(jval any) string {
	switch v := jval.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
