package journey

// slotKind selects the transition rule the driver applies to a field slot.
type slotKind int

const (
	slotPlain       slotKind = iota
	slotBranch               // consumes a follow-up value into MoreKey when the answer is "more"
	slotNumeric              // collects invalid answers into WrongKey until a digits-only value arrives
	slotConditional          // consumed only when a prior field's value contains a trigger
)

// slot is one field position in a flow's fixed answer order.
type slot struct {
	Key       string
	Kind      slotKind
	MoreKey   string   // slotBranch
	WrongKey  string   // slotNumeric
	DependsOn string   // slotConditional: key of the gating field
	Triggers  []string // slotConditional: substrings that enable the slot
}

// flowSpec describes a flow as data: the ordered slots plus any fixed
// literal fields. Adding a flow is a table change, not a code change.
type flowSpec struct {
	Slots []slot
	Fixed map[string]string
}

var flowSpecs = map[Flow]flowSpec{
	FlowRentTenant: {Slots: []slot{
		{Key: "rent_tenant_btn_city"},
		{Key: "rent_tenant_btn_configuration", Kind: slotBranch, MoreKey: "rent_tenant_btn_configuration_more"},
		{Key: "rent_tenant_txt_locality"},
		{Key: "rent_tenant_txt_budget_correct", Kind: slotNumeric, WrongKey: "rent_tenant_txt_budget_wrong"},
		{Key: "rent_tenant_txt_email"},
		{Key: "rent_tenant_btn_est_move_in"},
	}},
	FlowRentOwner: {Slots: []slot{
		{Key: "rent_owner_btn_city"},
		{Key: "rent_owner_btn_configuration", Kind: slotBranch, MoreKey: "rent_owner_btn_configuration_more"},
		{Key: "rent_owner_txt_locality"},
		{Key: "rent_owner_txt_rent_expectation_correct", Kind: slotNumeric, WrongKey: "rent_owner_txt_rent_expectation_wrong"},
	}},
	FlowBuyBuyer: {Slots: []slot{
		{Key: "buy_buyer_btn_configuration", Kind: slotBranch, MoreKey: "buy_buyer_btn_configuration_more"},
		{Key: "buy_buyer_txt_locality"},
		{Key: "buy_buyer_txt_budget_correct", Kind: slotNumeric, WrongKey: "buy_buyer_txt_budget_wrong"},
		{Key: "buy_buyer_txt_email"},
	}},
	FlowBuySeller: {Slots: []slot{
		{Key: "buy_seller_btn_configuration", Kind: slotBranch, MoreKey: "buy_seller_btn_configuration_more"},
		{Key: "buy_seller_txt_locality"},
		{Key: "buy_seller_txt_sale_expectation_correct", Kind: slotNumeric, WrongKey: "buy_seller_txt_sale_expectation_wrong"},
		{Key: "buy_seller_txt_email"},
	}},
	FlowChannelPartner: {Slots: []slot{
		{Key: "cp_mode_of_operation"},
		{Key: "cp_name", Kind: slotConditional, DependsOn: "cp_mode_of_operation", Triggers: []string{"firm", "company"}},
		{Key: "cp_area_expertise"},
		{Key: "cp_office_location"},
		{Key: "cp_rera_registered"},
		{Key: "cp_rera_info", Kind: slotConditional, DependsOn: "cp_rera_registered", Triggers: []string{"yes"}},
	}},
	FlowTalkToExpert: {Fixed: map[string]string{"message": "Talk to Expert selected"}},
	FlowUnknown:      {},
}
