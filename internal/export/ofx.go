package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
)

// DateLayout is the transaction date format the OFX writer understands.
const DateLayout = "2006-01-02"

// OFX field limits.
const (
	maxNameLen = 32
	maxMemoLen = 255
)

// OFXWriter writes a bank statement response that personal finance tools can
// import.
type OFXWriter struct {
	logger    *slog.Logger
	Dir       string
	Currency  string
	BankID    string
	AccountID string
}

// NewOFXWriter creates a writer that saves into dir.
func NewOFXWriter(dir, currency, bankID, accountID string, logger *slog.Logger) *OFXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &OFXWriter{
		Dir:       dir,
		Currency:  currency,
		BankID:    bankID,
		AccountID: accountID,
		logger:    logger,
	}
}

// Export writes {Dir}/{name}.ofx, replacing any existing file.
func (w *OFXWriter) Export(ctx context.Context, txns []model.Transaction, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(w.Dir, SafeName(name)+".ofx")
	if err := writeFile(path, func(out io.Writer) error {
		return w.WriteStatement(out, txns)
	}); err != nil {
		return "", err
	}

	w.logger.Info("Wrote OFX statement", "path", path, "transactions", len(txns))
	return path, nil
}

// WriteStatement marshals the credits and debits of txns as OFX 2.2.
func (w *OFXWriter) WriteStatement(out io.Writer, txns []model.Transaction) error {
	resp, err := w.buildResponse(txns)
	if err != nil {
		return err
	}

	buf, err := resp.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal OFX: %w", err)
	}
	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write OFX: %w", err)
	}
	return nil
}

func (w *OFXWriter) buildResponse(txns []model.Transaction) (*ofxgo.Response, error) {
	currency := w.Currency
	if currency == "" {
		currency = "MYR"
	}
	curDef, err := ofxgo.NewCurrSymbol(currency)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currency, err)
	}

	var (
		list    []ofxgo.Transaction
		seen    = make(map[string]int)
		balance = new(big.Rat)
		start   time.Time
		end     time.Time
	)

	for _, sheet := range Partition(txns) {
		for _, t := range sheet.Rows {
			posted, err := time.Parse(DateLayout, t.Date)
			if err != nil {
				return nil, common.NewValidationError("date", "%q is not a %s date", t.Date, DateLayout)
			}
			if start.IsZero() || posted.Before(start) {
				start = posted
			}
			if posted.After(end) {
				end = posted
			}

			key := rowKey(t)
			trn, err := toOFXTransaction(t, posted, fitID(key, seen[key]))
			seen[key]++
			if err != nil {
				return nil, err
			}
			balance.Add(balance, &trn.TrnAmt.Rat)
			list = append(list, trn)
		}
	}

	now := time.Now()
	if start.IsZero() {
		start, end = now, now
	}

	stmt := ofxgo.StatementResponse{
		TrnUID: ofxgo.UID(uuid.NewString()),
		Status: ofxgo.Status{
			Code:     0,
			Severity: "INFO",
		},
		CurDef: *curDef,
		BankAcctFrom: ofxgo.BankAcct{
			BankID:   ofxgo.String(w.BankID),
			AcctID:   ofxgo.String(w.AccountID),
			AcctType: ofxgo.AcctTypeChecking,
		},
		BankTranList: &ofxgo.TransactionList{
			DtStart:      ofxgo.Date{Time: start},
			DtEnd:        ofxgo.Date{Time: end},
			Transactions: list,
		},
		DtAsOf: ofxgo.Date{Time: end},
	}
	stmt.BalAmt.Set(balance)

	return &ofxgo.Response{
		Version: ofxgo.OfxVersion220,
		Signon: ofxgo.SignonResponse{
			Status: ofxgo.Status{
				Code:     0,
				Severity: "INFO",
			},
			DtServer: ofxgo.Date{Time: now},
			Language: "ENG",
		},
		Bank: []ofxgo.Message{&stmt},
	}, nil
}

func toOFXTransaction(t model.Transaction, posted time.Time, id string) (ofxgo.Transaction, error) {
	var amount ofxgo.Amount
	if _, ok := amount.SetString(t.Amount.String()); !ok {
		return ofxgo.Transaction{}, common.NewValidationError("amount", "%s is not a valid amount", t.Amount)
	}

	trnType := ofxgo.TrnTypeDebit
	if t.IsCredit() {
		trnType = ofxgo.TrnTypeCredit
	}

	return ofxgo.Transaction{
		TrnType:  trnType,
		DtPosted: ofxgo.Date{Time: posted},
		TrnAmt:   amount,
		FiTID:    ofxgo.String(id),
		Name:     ofxgo.String(truncate(t.Name, maxNameLen)),
		Memo:     ofxgo.String(truncate(t.Description, maxMemoLen)),
	}, nil
}

func rowKey(t model.Transaction) string {
	return t.Date + "|" + t.Name + "|" + t.Amount.String() + "|" + t.Description
}

// fitID is derived from the row content and its occurrence among identical
// rows, so re-exports keep their ids and repeated lines stay distinct.
func fitID(key string, occurrence int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key+"|"+strconv.Itoa(occurrence))).String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
