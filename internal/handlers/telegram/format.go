package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/vietdca/alphatrack/internal/spendwatch"

	"github.com/shopspring/decimal"
)

// displayZone is the fixed offset used to render transaction times to users.
var displayZone = time.FixedZone("UTC+7", 7*60*60)

// displayTimeLayout renders timestamps as day/month/year.
const displayTimeLayout = "02/01/2006 15:04:05"

// formatStatsMessage renders the /stats reply: the aggregate total and
// transaction count, followed by a per-wallet breakdown with each wallet's
// first and last transaction of the day. The records slice must be sorted
// descending by time.
func formatStatsMessage(wallets []string, total decimal.Decimal, records []spendwatch.TransactionRecord) string {
	var sb strings.Builder

	sb.WriteString("📊 Binance Alpha Buy Volume\n\n")
	fmt.Fprintf(&sb, "Total: %s BSC-USD\n", total.StringFixed(2))
	fmt.Fprintf(&sb, "Transactions: %d\n\n", len(records))

	for _, wallet := range wallets {
		walletRecords := recordsForWallet(records, wallet)
		walletTotal := decimal.Zero
		for _, record := range walletRecords {
			walletTotal = walletTotal.Add(record.Value)
		}

		fmt.Fprintf(&sb, "Wallet %s:\n", wallet)
		fmt.Fprintf(&sb, "Total vol: %s BSC-USD\n", walletTotal.StringFixed(2))
		fmt.Fprintf(&sb, "Tx count: %d\n", len(walletRecords))

		if len(walletRecords) > 0 {
			// Records are sorted newest first, so the wallet's first
			// transaction of the day is the last element.
			first := walletRecords[len(walletRecords)-1]
			last := walletRecords[0]

			fmt.Fprintf(&sb, "⏰ First tx today: [%s] UTC+7 - %s BSC-USD\n",
				first.Time.In(displayZone).Format(displayTimeLayout),
				first.Value.StringFixed(2),
			)
			fmt.Fprintf(&sb, "🔄 Last tx today: [%s] UTC+7 - %s BSC-USD\n",
				last.Time.In(displayZone).Format(displayTimeLayout),
				last.Value.StringFixed(2),
			)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// recordsForWallet filters records down to the given wallet, preserving
// order.
func recordsForWallet(records []spendwatch.TransactionRecord, wallet string) []spendwatch.TransactionRecord {
	out := make([]spendwatch.TransactionRecord, 0, len(records))
	for _, record := range records {
		if strings.EqualFold(record.Wallet, wallet) {
			out = append(out, record)
		}
	}

	return out
}
