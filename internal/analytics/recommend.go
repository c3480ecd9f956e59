package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"fintrack/internal/core"
)

// Recommendation priorities, strongest first.
const (
	priorityCritical = "critical"
	priorityUrgent   = "urgent"
	priorityHigh     = "high"
	priorityMedium   = "medium"
	priorityLow      = "low"
)

var priorityRank = map[string]int{
	priorityCritical: 0,
	priorityUrgent:   1,
	priorityHigh:     2,
	priorityMedium:   3,
	priorityLow:      4,
}

// Output caps. Lower-ranked items past the cap are dropped silently.
const (
	maxPriorityActions   = 5
	maxRecommendations   = 8
	maxInsights          = 6
	maxTips              = 4
	emergencyFundMonths  = 3
	emergencyIdealMonths = 6
)

// Recommendation is one emitted action with its priority and the numbers
// that justified it.
type Recommendation struct {
	Priority        string   `json:"priority"`
	Category        string   `json:"category"`
	Action          string   `json:"action"`
	Reason          string   `json:"reason"`
	Impact          string   `json:"impact"`
	EstimatedImpact float64  `json:"estimated_impact"`
	Timeline        string   `json:"timeline,omitempty"`
	Steps           []string `json:"actionable_steps,omitempty"`
}

// RecInsight is a positive or informational observation.
type RecInsight struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Detail   string `json:"detail"`
}

// RecTip is general guidance not tied to a specific data problem.
type RecTip struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// NextPaycheck is an expected income event derived from payment history.
type NextPaycheck struct {
	Earner string  `json:"earner"`
	Amount float64 `json:"amount"`
	Days   int     `json:"days"`
	Date   string  `json:"date"`
}

// DataCompleteness reports which collections have records.
type DataCompleteness struct {
	HasAccounts     bool `json:"has_accounts"`
	HasIncome       bool `json:"has_income"`
	HasExpenses     bool `json:"has_expenses"`
	HasTransactions bool `json:"has_transactions"`
}

// RecommendationSummary is the numeric context the rules fired against.
type RecommendationSummary struct {
	CheckingBalance      float64          `json:"checking_balance"`
	SavingsBalance       float64          `json:"savings_balance"`
	TotalLiquid          float64          `json:"total_liquid"`
	CreditBalance        float64          `json:"credit_balance"`
	TotalMonthlyIncome   float64          `json:"total_monthly_income"`
	TotalMonthlyExpenses float64          `json:"total_monthly_expenses"`
	AvailableForMonth    float64          `json:"available_for_month"`
	MtdSpent             float64          `json:"mtd_spent"`
	RemainingBudget      float64          `json:"remaining_budget"`
	DailySpendingRate    float64          `json:"daily_spending_rate"`
	SafeDailyRate        float64          `json:"safe_daily_rate"`
	UpcomingBills7Days   float64          `json:"upcoming_bills_7days"`
	UnpaidBillCount      int              `json:"unpaid_bill_count"`
	DaysRemaining        int              `json:"days_remaining"`
	SpendingTrend        string           `json:"spending_trend"`
	EmergencyFundStatus  string           `json:"emergency_fund_status"`
	DataCompleteness     DataCompleteness `json:"data_completeness"`
}

// SmartRecommendations is the full prioritizer output.
type SmartRecommendations struct {
	PriorityActions []Recommendation      `json:"priority_actions"`
	Recommendations []Recommendation      `json:"recommendations"`
	Insights        []RecInsight          `json:"insights"`
	Tips            []RecTip              `json:"tips"`
	Summary         RecommendationSummary `json:"summary"`
	GeneratedAt     string                `json:"generated_at"`
	MonthsAnalyzed  int                   `json:"months_analyzed"`
}

// unpaidBill is an unpaid fixed expense inside the 7-day window.
type unpaidBill struct {
	Name    string
	Amount  float64
	Days    int
	AutoPay bool
}

// largeTransaction is one of the biggest purchases this month.
type largeTransaction struct {
	Amount   float64
	Category string
}

// recContext is the single snapshot-derived context every rule reads.
// Rules never touch the snapshot directly, so each one stays a pure
// predicate over the same figures.
type recContext struct {
	mc monthContext

	checking float64
	savings  float64
	credit   float64
	liquid   float64

	accountCount int
	incomeCount  int
	expenseCount int

	nextPaychecks []NextPaycheck
	unpaidBills   []unpaidBill
	bills7        float64
	bills14       float64
	autopayTotal  float64
	manualTotal   float64

	spendingByCategory map[string]float64
	largestTx          []largeTransaction
	monthsAnalyzed     int
	avgMonthlySpending float64
	spendingTrend      string

	remaining float64
	dailyRate float64
	safeRate  float64
	daysLeft  int // never 0: the last day of the month counts as one day left
}

func (c *recContext) emergencyTarget() float64 {
	return c.mc.totalExpenses * emergencyFundMonths
}

func (c *recContext) emergencyIdeal() float64 {
	return c.mc.totalExpenses * emergencyIdealMonths
}

func buildRecContext(snap core.Snapshot) *recContext {
	mc := buildMonthContext(snap)
	c := &recContext{
		mc:                 mc,
		checking:           snap.CheckingBalance(),
		savings:            snap.SavingsBalance(),
		credit:             snap.CreditBalance(),
		liquid:             snap.LiquidBalance(),
		accountCount:       len(snap.Accounts),
		incomeCount:        len(snap.Incomes),
		expenseCount:       len(snap.Expenses),
		spendingByCategory: make(map[string]float64),
	}

	c.nextPaychecks = expectedPaychecks(snap)

	for _, fe := range snap.Expenses {
		if fe.AutoPay {
			c.autopayTotal += fe.Amount
		} else {
			c.manualTotal += fe.Amount
		}
		if fe.DueDay <= 0 || fe.IsPaidIn(mc.now.Year(), mc.now.Month()) {
			continue
		}
		until := fe.DueDay - mc.day
		if until < 0 {
			until += mc.daysInMonth
		}
		if until <= 7 {
			c.bills7 += fe.Amount
			c.unpaidBills = append(c.unpaidBills, unpaidBill{
				Name:    fe.Name,
				Amount:  fe.Amount,
				Days:    until,
				AutoPay: fe.AutoPay,
			})
		}
		if until <= 14 {
			c.bills14 += fe.Amount
		}
	}
	sort.SliceStable(c.unpaidBills, func(i, j int) bool {
		return c.unpaidBills[i].Days < c.unpaidBills[j].Days
	})

	year, month := mc.now.Year(), mc.now.Month()
	for _, tx := range snap.Transactions {
		if tx.Amount <= 0 || tx.Date.IsZero() {
			continue
		}
		if tx.Date.Year() != year || tx.Date.Month() != month {
			continue
		}
		cat := tx.Category
		if cat == "" {
			cat = core.CategoryUncategorized
		}
		c.spendingByCategory[cat] += tx.Amount
		c.largestTx = append(c.largestTx, largeTransaction{Amount: tx.Amount, Category: cat})
	}
	sort.SliceStable(c.largestTx, func(i, j int) bool {
		return c.largestTx[i].Amount > c.largestTx[j].Amount
	})
	if len(c.largestTx) > 5 {
		c.largestTx = c.largestTx[:5]
	}

	// Six months of total spending, most recent first. Empty months are
	// dropped before trend math.
	var spendingValues []float64
	for i := 1; i <= 6; i++ {
		pastYear, pastMonth := year, month-i
		for pastMonth <= 0 {
			pastMonth += 12
			pastYear--
		}
		var monthSpend float64
		for _, tx := range snap.Transactions {
			if tx.Amount <= 0 || tx.Date.IsZero() {
				continue
			}
			if tx.Date.Year() == pastYear && tx.Date.Month() == pastMonth {
				monthSpend += tx.Amount
			}
		}
		if monthSpend > 0 {
			spendingValues = append(spendingValues, monthSpend)
		}
	}
	c.monthsAnalyzed = len(spendingValues)
	if len(spendingValues) > 0 {
		c.avgMonthlySpending = meanOf(spendingValues)
	}
	c.spendingTrend = spendingTrendOf(spendingValues)

	c.daysLeft = mc.daysRemaining
	if c.daysLeft == 0 {
		c.daysLeft = 1
	}
	c.remaining = mc.availableForMonth() - mc.mtdSpent
	c.dailyRate = mc.dailyRate()
	c.safeRate = c.remaining / float64(c.daysLeft)
	return c
}

// expectedPaychecks projects each income source forward from its most
// recent recorded payment, falling back to the declared next pay date.
// Annual sources have no useful short-term projection and are skipped.
func expectedPaychecks(snap core.Snapshot) []NextPaycheck {
	now := snap.TakenAt
	var checks []NextPaycheck
	for _, inc := range snap.Incomes {
		last := lastPaymentDate(inc)
		var next time.Time
		switch {
		case last.IsZero():
			if inc.NextPayDate.IsZero() {
				continue
			}
			next = inc.NextPayDate.Time
		case inc.Frequency == core.Weekly:
			next = last.AddDate(0, 0, 7)
		case inc.Frequency == core.BiWeekly:
			next = last.AddDate(0, 0, 14)
		case inc.Frequency == core.Monthly:
			next = last.AddDate(0, 1, 0)
		default:
			continue
		}
		days := int(next.Sub(now.Time).Hours() / 24)
		if days < 0 {
			continue
		}
		earner := inc.Earner
		if earner == "" {
			earner = inc.Name
		}
		checks = append(checks, NextPaycheck{
			Earner: earner,
			Amount: core.Round2(inc.Amount),
			Days:   days,
			Date:   next.Format("Jan 02"),
		})
	}
	sort.SliceStable(checks, func(i, j int) bool { return checks[i].Days < checks[j].Days })
	return checks
}

func lastPaymentDate(inc core.IncomeSource) time.Time {
	var last time.Time
	for _, p := range inc.Payments {
		if p.Date.IsZero() {
			continue
		}
		if p.Date.After(last) {
			last = p.Date.Time
		}
	}
	return last
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// spendingTrendOf compares the recent three months against the three
// before them; fewer than three data points is not enough signal.
func spendingTrendOf(values []float64) string {
	if len(values) < 3 {
		return "insufficient_data"
	}
	recent := meanOf(values[:3])
	older := recent
	if len(values) >= 6 {
		older = meanOf(values[3:6])
	}
	switch {
	case recent > older*1.1:
		return "increasing"
	case recent < older*0.9:
		return "decreasing"
	default:
		return "stable"
	}
}

// Every rule is an independent predicate over the shared context that
// yields at most one item. Ordering inside each list is the authoring
// order; the final sort by priority happens after all rules ran.
type actionRule func(*recContext) *Recommendation

type insightRule func(*recContext) *RecInsight

type tipRule func(*recContext) *RecTip

// priorityRules produce the critical/urgent action list. The first three
// are account-level criticals; their guards are mutually exclusive so at
// most one fires.
var priorityRules = []actionRule{
	ruleOverdraft,
	ruleBillCoverage,
	ruleBudgetOverrun,
	ruleBillsDueNow,
	ruleLowBalance,
	ruleVelocityBreach,
}

// adviceRules produce the general recommendation list.
var adviceRules = []actionRule{
	ruleEmergencyFund,
	ruleVelocityWarning,
	ruleCreditDebt,
	ruleSavingsRate,
	ruleCategoryConcentration,
	ruleAutopayGap,
	ruleAccountDiversification,
	ruleSetupIncome,
	ruleSetupExpenses,
	ruleSetupAccounts,
}

var insightRules = []insightRule{
	insightEmergencyFund,
	insightSpendingPace,
	insightDecreasingTrend,
	insightAutopayCoverage,
	insightSurplus,
	insightPaycheckSoon,
}

var tipRules = []tipRule{
	tipMonthPhase,
	tipBudgetRule,
	tipLargestPurchase,
}

func ruleOverdraft(c *recContext) *Recommendation {
	if c.checking >= 0 {
		return nil
	}
	overdrawn := math.Abs(c.checking)
	return &Recommendation{
		Priority:        priorityCritical,
		Category:        "Account Emergency",
		Action:          "Transfer funds to cover overdraft immediately",
		Reason:          fmt.Sprintf("Your checking account is overdrawn by $%.2f", overdrawn),
		Impact:          "You may be charged overdraft fees ($25-35 per transaction). Act now!",
		EstimatedImpact: core.Round2(overdrawn),
		Steps: []string{
			fmt.Sprintf("Transfer $%.2f from savings to checking", overdrawn+100),
			"Check for pending overdraft fees",
			"Contact your bank if fees were charged to request fee reversal",
		},
	}
}

func ruleBillCoverage(c *recContext) *Recommendation {
	if c.checking <= 0 || c.checking >= c.bills7 {
		return nil
	}
	deficit := c.bills7 - c.checking
	return &Recommendation{
		Priority:        priorityCritical,
		Category:        "Bill Payment Risk",
		Action:          fmt.Sprintf("Transfer $%.2f to checking for upcoming bills", deficit+200),
		Reason:          fmt.Sprintf("Bills due in 7 days ($%.2f) exceed checking balance ($%.2f)", c.bills7, c.checking),
		Impact:          "Prevent late payment fees and maintain good payment history",
		EstimatedImpact: core.Round2(deficit),
		Steps: []string{
			fmt.Sprintf("Transfer $%.2f from savings (includes $200 buffer)", deficit+200),
			"Review which bills are due in the next week",
			"Consider setting up autopay for recurring bills",
		},
	}
}

func ruleBudgetOverrun(c *recContext) *Recommendation {
	if c.remaining >= 0 || c.checking < 0 || (c.checking > 0 && c.checking < c.bills7) {
		return nil
	}
	overrun := math.Abs(c.remaining)
	dailyTarget := math.Max(c.remaining/float64(c.daysLeft), 0)
	return &Recommendation{
		Priority:        priorityCritical,
		Category:        "Budget Overrun",
		Action:          "Immediately reduce spending - budget already exceeded",
		Reason:          fmt.Sprintf("You've already spent $%.2f more than your monthly budget with %d days left", overrun, c.daysLeft),
		Impact:          "Prevent further debt accumulation and financial stress",
		EstimatedImpact: core.Round2(overrun),
		Steps: []string{
			"Stop all non-essential spending immediately",
			"Review large recent purchases to see if any can be returned",
			"Use only cash for remaining days of month",
			fmt.Sprintf("Target: Spend less than $%.2f/day", dailyTarget),
		},
	}
}

func ruleBillsDueNow(c *recContext) *Recommendation {
	var urgent []unpaidBill
	var total float64
	for _, b := range c.unpaidBills {
		if b.Days <= 1 && !b.AutoPay {
			urgent = append(urgent, b)
			total += b.Amount
		}
	}
	if len(urgent) == 0 {
		return nil
	}
	var steps []string
	for _, b := range urgent {
		if len(steps) == 3 {
			break
		}
		plural := "s"
		if b.Days == 1 {
			plural = ""
		}
		steps = append(steps, fmt.Sprintf("Pay %s: $%.2f (due in %d day%s)", b.Name, b.Amount, b.Days, plural))
	}
	return &Recommendation{
		Priority:        priorityUrgent,
		Category:        "Bills Due Now",
		Action:          fmt.Sprintf("Pay %d bill(s) due today/tomorrow", len(urgent)),
		Reason:          fmt.Sprintf("$%.2f in manual payments needed immediately", total),
		Impact:          "Avoid late fees ($25-50 per bill) and maintain credit score",
		EstimatedImpact: core.Round2(total),
		Steps:           steps,
	}
}

func ruleLowBalance(c *recContext) *Recommendation {
	if c.checking <= 0 || c.checking >= 200 || c.bills14 <= 0 {
		return nil
	}
	topUp := math.Max(500-c.checking, 0)
	return &Recommendation{
		Priority:        priorityUrgent,
		Category:        "Low Balance Warning",
		Action:          "Replenish checking account - dangerously low",
		Reason:          fmt.Sprintf("Only $%.2f in checking with $%.2f due in 2 weeks", c.checking, c.bills14),
		Impact:          "Prevent overdrafts and maintain minimum balance requirements",
		EstimatedImpact: core.Round2(topUp),
		Steps: []string{
			fmt.Sprintf("Transfer $%.2f from savings to checking", topUp),
			"Delay non-essential purchases until after next paycheck",
			"Review which bills can be pushed to later in the month if needed",
		},
	}
}

func ruleVelocityBreach(c *recContext) *Recommendation {
	if c.mc.day < 7 || c.dailyRate <= c.safeRate*1.5 {
		return nil
	}
	overspend := (c.dailyRate - c.safeRate) * float64(c.daysLeft)
	return &Recommendation{
		Priority:        priorityUrgent,
		Category:        "Spending Velocity",
		Action:          fmt.Sprintf("Slow down spending immediately - tracking to overspend by $%.2f", overspend),
		Reason:          fmt.Sprintf("Current pace: $%.2f/day. Safe pace: $%.2f/day", c.dailyRate, c.safeRate),
		Impact:          fmt.Sprintf("Avoid going $%.2f over budget this month", overspend),
		EstimatedImpact: core.Round2(overspend),
		Steps: []string{
			fmt.Sprintf("Reduce daily spending to $%.2f or less", c.safeRate),
			"Meal prep at home instead of dining out",
			"Postpone non-essential purchases until next month",
			"Track every purchase for the rest of the month",
		},
	}
}

func ruleEmergencyFund(c *recContext) *Recommendation {
	target := c.emergencyTarget()
	ideal := c.emergencyIdeal()
	switch {
	case c.savings < target:
		shortage := target - c.savings
		var monthsToBuild float64
		if c.mc.totalIncome > 0 {
			monthsToBuild = shortage / (c.mc.totalIncome * 0.10)
		}
		targetDate := c.mc.now.AddDate(0, 0, int(monthsToBuild*30)).Format("January 2006")
		return &Recommendation{
			Priority:        priorityHigh,
			Category:        "Emergency Fund",
			Action:          fmt.Sprintf("Build emergency fund to $%.2f (3 months expenses)", target),
			Reason:          fmt.Sprintf("Current savings: $%.2f. You're $%.2f short of a 3-month safety net", c.savings, shortage),
			Impact:          "Financial security in case of job loss, medical emergency, or major expense",
			EstimatedImpact: core.Round2(shortage),
			Timeline:        fmt.Sprintf("~%d months at 10%% savings rate", int(monthsToBuild)),
			Steps: []string{
				fmt.Sprintf("Save $%.2f/month (10%% of income)", c.mc.totalIncome*0.10),
				"Automate transfers to savings on payday",
				"Put windfalls (tax refunds, bonuses) directly into savings",
				fmt.Sprintf("Target date: %s", targetDate),
			},
		}
	case c.savings < ideal:
		shortage := ideal - c.savings
		return &Recommendation{
			Priority:        priorityMedium,
			Category:        "Emergency Fund",
			Action:          fmt.Sprintf("Boost emergency fund to $%.2f (6 months)", ideal),
			Reason:          "You have the minimum 3-month fund. Consider building to ideal 6-month cushion",
			Impact:          "Maximum financial security and peace of mind",
			EstimatedImpact: core.Round2(shortage),
			Steps: []string{
				fmt.Sprintf("Increase savings to $%.2f/month", c.mc.totalIncome*0.15),
				"Continue until reaching 6-month target",
				"Keep funds in high-yield savings account (5%+ APY)",
			},
		}
	default:
		return nil
	}
}

func ruleVelocityWarning(c *recContext) *Recommendation {
	if c.mc.day < 5 || c.safeRate <= 0 || c.dailyRate <= c.safeRate*1.2 {
		return nil
	}
	overspend := (c.dailyRate - c.safeRate) * float64(c.daysLeft)
	return &Recommendation{
		Priority:        priorityHigh,
		Category:        "Spending Control",
		Action:          fmt.Sprintf("Reduce spending to $%.2f/day", c.safeRate),
		Reason:          fmt.Sprintf("Current pace ($%.2f/day) is 20%% too high", c.dailyRate),
		Impact:          fmt.Sprintf("Stay within budget and avoid $%.2f overspend", overspend),
		EstimatedImpact: core.Round2(overspend),
		Steps: []string{
			"Review recent large purchases - were they necessary?",
			"Use the \"48-hour rule\" for purchases over $50",
			"Pack lunch instead of eating out",
			"Have a \"no-spend weekend\" this week",
		},
	}
}

func ruleCreditDebt(c *recContext) *Recommendation {
	if c.credit >= 0 {
		return nil
	}
	debt := math.Abs(c.credit)
	return &Recommendation{
		Priority:        priorityHigh,
		Category:        "Debt Payoff",
		Action:          fmt.Sprintf("Pay down credit card debt: $%.2f", debt),
		Reason:          "High-interest debt costs you money every month",
		Impact:          fmt.Sprintf("Save ~$%.2f/month in interest (assuming 20%% APR)", debt*0.20/12),
		EstimatedImpact: core.Round2(debt),
		Steps: []string{
			"Pay minimum + $50-100 extra each month",
			"Stop using credit cards until balance is paid off",
			"Consider debt avalanche method (highest interest first)",
			"Look into balance transfer offers (0% APR for 12-18 months)",
		},
	}
}

func ruleSavingsRate(c *recContext) *Recommendation {
	if c.mc.totalIncome <= 0 {
		return nil
	}
	rate := 0.0
	if c.savings >= 0 {
		rate = c.savings / c.mc.totalIncome
	}
	if rate >= 0.10 {
		return nil
	}
	target := c.mc.totalIncome * 0.10
	return &Recommendation{
		Priority:        priorityMedium,
		Category:        "Savings Rate",
		Action:          fmt.Sprintf("Increase savings to $%.2f/month (10%% of income)", target),
		Reason:          "Financial experts recommend saving at least 10-15% of income",
		Impact:          fmt.Sprintf("$%.2f/year toward financial goals", target*12),
		EstimatedImpact: core.Round2(target * 12),
		Steps: []string{
			"Set up automatic transfer on payday",
			"Start small (5%) and increase monthly",
			"Use the \"pay yourself first\" method",
			"Save raises and bonuses instead of spending them",
		},
	}
}

// discretionaryCategories are the ones worth flagging when they dominate
// the month's spending.
var discretionaryCategories = map[string]bool{
	"Dining Out":    true,
	"Entertainment": true,
	"Shopping":      true,
}

func ruleCategoryConcentration(c *recContext) *Recommendation {
	if c.avgMonthlySpending <= 0 || c.mc.mtdSpent <= 0 || c.mc.day == 0 {
		return nil
	}
	type catSpend struct {
		name   string
		amount float64
	}
	cats := make([]catSpend, 0, len(c.spendingByCategory))
	for name, amount := range c.spendingByCategory {
		cats = append(cats, catSpend{name, amount})
	}
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].amount != cats[j].amount {
			return cats[i].amount > cats[j].amount
		}
		return cats[i].name < cats[j].name
	})
	if len(cats) > 3 {
		cats = cats[:3]
	}
	for _, cs := range cats {
		pct := cs.amount / c.mc.mtdSpent * 100
		if !discretionaryCategories[cs.name] || pct <= 25 {
			continue
		}
		projected := cs.amount / float64(c.mc.day) * float64(c.mc.daysInMonth)
		return &Recommendation{
			Priority:        priorityMedium,
			Category:        "Category Spending",
			Action:          fmt.Sprintf("Reduce %s spending", cs.name),
			Reason:          fmt.Sprintf("%s is %.0f%% of your spending ($%.2f this month)", cs.name, pct, cs.amount),
			Impact:          fmt.Sprintf("Save $%.2f/month by cutting 30%%", projected*0.30),
			EstimatedImpact: core.Round2(projected * 0.30),
			Steps: []string{
				fmt.Sprintf("Set a %s budget of $%.2f/month", cs.name, projected*0.70),
				"Find free or low-cost alternatives",
				"Use coupons and discount apps",
				"Track every purchase in this category",
			},
		}
	}
	return nil
}

func ruleAutopayGap(c *recContext) *Recommendation {
	if c.manualTotal <= 0 || c.autopayTotal >= c.mc.totalExpenses {
		return nil
	}
	return &Recommendation{
		Priority: priorityLow,
		Category: "Automation",
		Action:   "Set up autopay for recurring bills",
		Reason:   fmt.Sprintf("$%.2f in bills still require manual payment", c.manualTotal),
		Impact:   "Never miss a payment, improve credit score, reduce mental overhead",
		Steps: []string{
			"Enable autopay for utilities, subscriptions, and fixed bills",
			"Keep at least 1 month of bills in checking as buffer",
			"Set calendar reminders 2 days before autopay dates",
			"Review statements monthly to catch errors",
		},
	}
}

func ruleAccountDiversification(c *recContext) *Recommendation {
	if c.accountCount == 0 || c.accountCount >= 3 {
		return nil
	}
	return &Recommendation{
		Priority: priorityLow,
		Category: "Account Setup",
		Action:   "Open separate savings account if needed",
		Reason:   "Separate accounts help organize money and prevent overspending",
		Impact:   "Better financial organization and automatic \"out of sight, out of mind\" savings",
		Steps: []string{
			"Open high-yield savings account (5%+ APY)",
			"Keep 3-6 months expenses in emergency fund",
			"Consider separate savings for goals (vacation, car, home)",
			"Look for accounts with no fees and no minimums",
		},
	}
}

func ruleSetupIncome(c *recContext) *Recommendation {
	if c.incomeCount > 0 {
		return nil
	}
	return &Recommendation{
		Priority: priorityMedium,
		Category: "Setup",
		Action:   "Add your income sources",
		Reason:   "We need to know your income to give accurate recommendations",
		Impact:   "Unlock personalized budgeting and projections",
		Steps: []string{
			"Go to Income tab",
			"Add all income sources (salary, side hustles, etc.)",
			"Include payment frequency and amounts",
		},
	}
}

func ruleSetupExpenses(c *recContext) *Recommendation {
	if c.expenseCount > 0 {
		return nil
	}
	return &Recommendation{
		Priority: priorityMedium,
		Category: "Setup",
		Action:   "Add your monthly bills and fixed expenses",
		Reason:   "Tracking fixed expenses helps prevent missed payments",
		Impact:   "Better budget planning and bill reminders",
		Steps: []string{
			"Go to Expenses tab",
			"Add recurring bills (rent, utilities, subscriptions)",
			"Include due dates and amounts",
		},
	}
}

func ruleSetupAccounts(c *recContext) *Recommendation {
	if c.accountCount > 0 {
		return nil
	}
	return &Recommendation{
		Priority: priorityMedium,
		Category: "Setup",
		Action:   "Add your bank accounts",
		Reason:   "We need account balances to monitor overdraft risk",
		Impact:   "Get real-time financial health insights",
		Steps: []string{
			"Add checking account(s)",
			"Add savings account(s)",
			"Add credit cards (if applicable)",
			"Update balances regularly",
		},
	}
}

func insightEmergencyFund(c *recContext) *RecInsight {
	switch {
	case c.mc.totalExpenses > 0 && c.savings >= c.emergencyIdeal():
		return &RecInsight{
			Type:     "celebration",
			Category: "Emergency Fund",
			Message:  "Excellent! You have 6+ months of expenses saved",
			Detail:   fmt.Sprintf("Your $%.2f savings provides strong financial security", c.savings),
		}
	case c.mc.totalExpenses > 0 && c.savings >= c.emergencyTarget():
		return &RecInsight{
			Type:     "positive",
			Category: "Emergency Fund",
			Message:  "Great job! You have 3+ months of expenses saved",
			Detail:   fmt.Sprintf("Your $%.2f emergency fund provides good protection", c.savings),
		}
	default:
		return nil
	}
}

func insightSpendingPace(c *recContext) *RecInsight {
	if c.mc.day < 7 || c.dailyRate <= 0 || c.dailyRate > c.safeRate {
		return nil
	}
	return &RecInsight{
		Type:     "positive",
		Category: "Spending Control",
		Message:  "Perfect spending pace!",
		Detail:   fmt.Sprintf("You're spending $%.2f/day, which is right on track", c.dailyRate),
	}
}

func insightDecreasingTrend(c *recContext) *RecInsight {
	if c.spendingTrend != "decreasing" {
		return nil
	}
	return &RecInsight{
		Type:     "positive",
		Category: "Spending Trend",
		Message:  "Your spending is decreasing over time",
		Detail:   "You're developing better spending habits. Keep it up!",
	}
}

func insightAutopayCoverage(c *recContext) *RecInsight {
	if c.mc.totalExpenses <= 0 {
		return nil
	}
	pct := c.autopayTotal / c.mc.totalExpenses * 100
	if pct < 80 {
		return nil
	}
	return &RecInsight{
		Type:     "positive",
		Category: "Automation",
		Message:  fmt.Sprintf("%.0f%% of bills are on autopay", pct),
		Detail:   "Great automation! This prevents late payments and saves time",
	}
}

func insightSurplus(c *recContext) *RecInsight {
	if c.remaining <= 200 || c.daysLeft >= 5 {
		return nil
	}
	return &RecInsight{
		Type:     "opportunity",
		Category: "Surplus",
		Message:  fmt.Sprintf("You have $%.2f surplus this month!", c.remaining),
		Detail:   "Consider moving it to savings or toward financial goals",
	}
}

func insightPaycheckSoon(c *recContext) *RecInsight {
	if len(c.nextPaychecks) == 0 {
		return nil
	}
	next := c.nextPaychecks[0]
	if next.Days > 3 {
		return nil
	}
	plural := "s"
	if next.Days == 1 {
		plural = ""
	}
	return &RecInsight{
		Type:     "info",
		Category: "Income",
		Message:  fmt.Sprintf("Paycheck coming soon: %s", next.Earner),
		Detail:   fmt.Sprintf("$%.2f in %d day%s", next.Amount, next.Days, plural),
	}
}

func tipMonthPhase(c *recContext) *RecTip {
	switch {
	case c.mc.day <= 7:
		return &RecTip{
			Category: "Month Start",
			Title:    "Start of Month Strategy",
			Message:  "Front-load your savings by transferring to savings immediately after payday. This ensures you save before spending.",
		}
	case c.mc.day >= 20:
		return &RecTip{
			Category: "Month End",
			Title:    "Finish Strong",
			Message:  "You're in the home stretch! Review your spending for the month and plan for next month's budget.",
		}
	default:
		return nil
	}
}

func tipBudgetRule(c *recContext) *RecTip {
	income := c.mc.totalIncome
	if income <= 0 || income >= 7000 {
		return nil
	}
	return &RecTip{
		Category: "Budget Strategy",
		Title:    "50/30/20 Budget Rule",
		Message: fmt.Sprintf("For your income ($%.2f/mo), aim for: 50%% needs ($%.2f), 30%% wants ($%.2f), 20%% savings ($%.2f)",
			income, income*0.50, income*0.30, income*0.20),
	}
}

func tipLargestPurchase(c *recContext) *RecTip {
	if len(c.largestTx) == 0 {
		return nil
	}
	top := c.largestTx[0]
	return &RecTip{
		Category: "Awareness",
		Title:    "Review Large Purchases",
		Message: fmt.Sprintf("Your largest purchase this month was $%.2f in %s. Always ask: \"Was this necessary? Could I have spent less?\"",
			top.Amount, top.Category),
	}
}

// BuildRecommendations evaluates every rule against one snapshot-derived
// context, merges the results, sorts by priority, and applies the output
// caps.
func BuildRecommendations(snap core.Snapshot) SmartRecommendations {
	c := buildRecContext(snap)

	actions := make([]Recommendation, 0, len(priorityRules))
	for _, rule := range priorityRules {
		if r := rule(c); r != nil {
			actions = append(actions, *r)
		}
	}
	recs := make([]Recommendation, 0, len(adviceRules))
	for _, rule := range adviceRules {
		if r := rule(c); r != nil {
			recs = append(recs, *r)
		}
	}
	insights := make([]RecInsight, 0, len(insightRules))
	for _, rule := range insightRules {
		if in := rule(c); in != nil {
			insights = append(insights, *in)
		}
	}
	tips := make([]RecTip, 0, len(tipRules))
	for _, rule := range tipRules {
		if tp := rule(c); tp != nil {
			tips = append(tips, *tp)
		}
	}

	byPriority := func(list []Recommendation) func(i, j int) bool {
		return func(i, j int) bool {
			return priorityRank[list[i].Priority] < priorityRank[list[j].Priority]
		}
	}
	sort.SliceStable(actions, byPriority(actions))
	sort.SliceStable(recs, byPriority(recs))

	if len(actions) > maxPriorityActions {
		actions = actions[:maxPriorityActions]
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}

	fundStatus := "building"
	if c.mc.totalExpenses > 0 {
		switch {
		case c.savings >= c.emergencyIdeal():
			fundStatus = "ideal"
		case c.savings >= c.emergencyTarget():
			fundStatus = "good"
		}
	}

	return SmartRecommendations{
		PriorityActions: actions,
		Recommendations: recs,
		Insights:        insights,
		Tips:            tips,
		Summary: RecommendationSummary{
			CheckingBalance:      core.Round2(c.checking),
			SavingsBalance:       core.Round2(c.savings),
			TotalLiquid:          core.Round2(c.liquid),
			CreditBalance:        core.Round2(c.credit),
			TotalMonthlyIncome:   core.Round2(c.mc.totalIncome),
			TotalMonthlyExpenses: core.Round2(c.mc.totalExpenses),
			AvailableForMonth:    core.Round2(c.mc.availableForMonth()),
			MtdSpent:             core.Round2(c.mc.mtdSpent),
			RemainingBudget:      core.Round2(c.remaining),
			DailySpendingRate:    core.Round2(c.dailyRate),
			SafeDailyRate:        core.Round2(c.safeRate),
			UpcomingBills7Days:   core.Round2(c.bills7),
			UnpaidBillCount:      len(c.unpaidBills),
			DaysRemaining:        c.daysLeft,
			SpendingTrend:        c.spendingTrend,
			EmergencyFundStatus:  fundStatus,
			DataCompleteness: DataCompleteness{
				HasAccounts:     c.accountCount > 0,
				HasIncome:       c.incomeCount > 0,
				HasExpenses:     c.expenseCount > 0,
				HasTransactions: c.mc.txCount > 0,
			},
		},
		GeneratedAt:    c.mc.now.Format(time.RFC3339),
		MonthsAnalyzed: c.monthsAnalyzed,
	}
}
