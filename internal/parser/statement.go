package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/google/uuid"
)

// StatementParser recognizes date-anchored transaction blocks in text
// extracted from a statement PDF.
//
// The layout it expects splits each date over two lines, followed by
// description lines and a line holding the amount and running balance:
//
//	05/03/
//	2024 ...
//	UPI DEBIT/4023/XXXXX1234/Google Play
//	250.00 10450.75
//	<more description>
type StatementParser struct {
	// Now supplies the fallback date for implausible components. It is read
	// once per Parse call.
	Now func() time.Time
	// NewID assigns temporary ids to candidates.
	NewID func() string
}

func (p *StatementParser) Name() string {
	return "Statement text"
}

var (
	datePrefixPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/$`)
	yearPattern       = regexp.MustCompile(`^(\d{4})`)
	amountLinePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)$`)
)

const (
	// amountWindow is how many lines after the year line may hold the amount.
	amountWindow = 4
	// trailingWindow is how many lines after the amount line still belong
	// to the description.
	trailingWindow = 4
)

// placeholderDescription is the text of the record emitted when nothing
// in the input could be recognized.
const placeholderDescription = "No transactions could be parsed from the PDF structure"

type scanState int

const (
	seekingDate scanState = iota
	confirmingYear
	lookingForAmount
	emitting
)

// span is the candidate block currently being assembled.
type span struct {
	start      int // index of the "DD/MM/" line
	day, month string
	year       string
	amountIdx  int
}

// Parse joins the pages, slices off everything up to the table header and
// runs the block recognizer over the remaining lines.
func (p *StatementParser) Parse(pages []string) (*models.StatementInfo, error) {
	now := p.now()
	lines, _ := TransactionLines(strings.Join(pages, "\n"))

	txns, debug := p.parseLines(lines, now)

	info := &models.StatementInfo{
		Source:       models.SourceStatement,
		Bank:         DetectBank(pages),
		Transactions: txns,
		DebugLines:   debug,
	}
	if len(txns) == 0 {
		info.Transactions = []models.Transaction{p.placeholder(now, placeholderDescription)}
		info.Placeholder = true
	}
	return info, nil
}

// parseLines is the block state machine. Every abandon transition resumes
// seeking at the line after the rejected date prefix.
func (p *StatementParser) parseLines(lines []string, now time.Time) ([]models.Transaction, []models.DebugLine) {
	var transactions []models.Transaction
	debug := make([]models.DebugLine, len(lines))
	for i, line := range lines {
		debug[i] = models.DebugLine{LineNum: i + 1, Text: line, Result: "skipped"}
	}

	state := seekingDate
	var cur span
	i := 0

	for {
		switch state {
		case seekingDate:
			if i >= len(lines)-1 {
				return transactions, debug
			}
			m := datePrefixPattern.FindStringSubmatch(lines[i])
			if m == nil {
				i++
				continue
			}
			cur = span{start: i, day: m[1], month: m[2], amountIdx: -1}
			state = confirmingYear

		case confirmingYear:
			m := yearPattern.FindStringSubmatch(lines[cur.start+1])
			if m == nil {
				debug[cur.start].Note = "date prefix without year"
				i, state = cur.start+1, seekingDate
				continue
			}
			cur.year = m[1]
			state = lookingForAmount

		case lookingForAmount:
			end := cur.start + 2 + amountWindow
			if end > len(lines) {
				end = len(lines)
			}
			for j := cur.start + 2; j < end; j++ {
				if amountLinePattern.MatchString(lines[j]) {
					cur.amountIdx = j
					break
				}
			}
			if cur.amountIdx < 0 {
				debug[cur.start].Note = "no amount line within window"
				i, state = cur.start+1, seekingDate
				continue
			}
			state = emitting

		case emitting:
			txn, next, ok := p.emit(cur, lines, debug, now)
			if ok {
				transactions = append(transactions, txn)
			}
			i, state = next, seekingDate
		}
	}
}

// emit builds the candidate for a complete span and returns the index at
// which seeking resumes. The trailing description window stops at the next
// date prefix so consecutive candidates never share lines.
func (p *StatementParser) emit(cur span, lines []string, debug []models.DebugLine, now time.Time) (models.Transaction, int, bool) {
	descLines := append([]string{}, lines[cur.start+2:cur.amountIdx]...)

	next := cur.amountIdx + 1
	for next < len(lines) && next <= cur.amountIdx+trailingWindow {
		if datePrefixPattern.MatchString(lines[next]) {
			break
		}
		descLines = append(descLines, lines[next])
		next++
	}

	debug[cur.start].Result = "date-prefix"
	debug[cur.start+1].Result = "year"
	for j := cur.start + 2; j < next; j++ {
		if j != cur.amountIdx {
			debug[j].Result = "description"
		}
	}

	amount, balance, err := splitAmountLine(lines[cur.amountIdx])
	if err != nil {
		debug[cur.amountIdx].Result = "skipped"
		debug[cur.amountIdx].Note = err.Error()
		return models.Transaction{}, next, false
	}
	debug[cur.amountIdx].Result = "amount"
	debug[cur.amountIdx].Note = "balance " + formatFloat(balance)

	text := strings.TrimSpace(strings.Join(descLines, " "))
	typ := inferType(text)

	return models.Transaction{
		ID:          p.newID(),
		Date:        normalizeDate(cur.day, cur.month, cur.year, now),
		Description: synthesizeDescription(text, typ),
		Amount:      amount,
		Type:        typ,
		Frequency:   models.Irregular,
	}, next, true
}

func (p *StatementParser) placeholder(now time.Time, desc string) models.Transaction {
	return models.Transaction{
		ID:          p.newID(),
		Date:        models.Today(now),
		Description: desc,
		Amount:      0,
		Type:        models.Debit,
		Frequency:   models.Irregular,
	}
}

func (p *StatementParser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *StatementParser) newID() string {
	if p.NewID != nil {
		return p.NewID()
	}
	return CandidateID()
}

// CandidateID returns a fresh temporary id for an extracted candidate.
func CandidateID() string {
	return "ext-" + uuid.NewString()
}
