package authz

// Item is one navigation entry. Public items are visible to every
// authenticated role; otherwise visibility requires membership in Allow.
// ADMIN bypasses both checks.
type Item struct {
	ID     string
	Label  string
	Public bool
	Allow  []Role
}

// Section groups nav items. A section renders only if at least one of its
// items is visible for the current role.
type Section struct {
	ID    string
	Label string
	Items []Item
}

// Registry is the static navigation table in display order.
var Registry = []Section{
	{
		ID:    "operations",
		Label: "Operations",
		Items: []Item{
			{ID: "dashboard", Label: "Dashboard", Allow: []Role{RoleChef, RoleInventoryManager}},
			{ID: "pos", Label: "Point of Sale", Allow: []Role{RoleWaiter}},
			{ID: "orders", Label: "Orders", Allow: []Role{RoleWaiter}},
		},
	},
	{
		ID:    "kitchen",
		Label: "Kitchen",
		Items: []Item{
			{ID: "recipes", Label: "Recipes", Allow: []Role{RoleChef}},
			{ID: "ingredients", Label: "Ingredients", Allow: []Role{RoleChef, RoleInventoryManager}},
			{ID: "stock-count", Label: "Stock Count", Allow: []Role{RoleInventoryManager}},
			{ID: "waste", Label: "Waste Log", Allow: []Role{RoleChef, RoleInventoryManager}},
		},
	},
	{
		ID:    "administration",
		Label: "Administration",
		Items: []Item{
			{ID: "staff", Label: "Staff"},
			{ID: "reports", Label: "Reports"},
		},
	},
	{
		ID:    "account",
		Label: "Account",
		Items: []Item{
			{ID: "settings", Label: "Settings", Public: true},
			{ID: "logout", Label: "Log Out", Public: true},
		},
	},
}

// ItemVisible reports whether the role may see the given nav item. Unknown
// item ids are not visible for anyone, including ADMIN.
func ItemVisible(role Role, itemID string) bool {
	for _, s := range Registry {
		for _, it := range s.Items {
			if it.ID == itemID {
				return itemVisible(role, it)
			}
		}
	}
	return false
}

func itemVisible(role Role, it Item) bool {
	if role == RoleAdmin {
		return true
	}
	if it.Public {
		return true
	}
	for _, r := range it.Allow {
		if r == role {
			return true
		}
	}
	return false
}

// SectionVisible reports whether any item in the section is visible.
func SectionVisible(role Role, s Section) bool {
	for _, it := range s.Items {
		if itemVisible(role, it) {
			return true
		}
	}
	return false
}

// FilterByRole returns the registry reduced to what the role may see,
// preserving configuration order and dropping empty sections. Safe to call
// on every render; the registry is never mutated.
func FilterByRole(role Role) []Section {
	var out []Section
	for _, s := range Registry {
		var items []Item
		for _, it := range s.Items {
			if itemVisible(role, it) {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, Section{ID: s.ID, Label: s.Label, Items: items})
	}
	return out
}
