package blindspots

// Industry is a selectable analysis target.
type Industry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Vertical string `json:"vertical,omitempty"`
	Category string `json:"category,omitempty"`
	Icon     string `json:"icon"`
}

// CategoryInfo describes how a category is labelled and colored.
type CategoryInfo struct {
	Key         Category `json:"key"`
	Label       string   `json:"label"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
}

var industries = []Industry{
	{ID: "software-dev", Name: "Software Development", Vertical: "Dev Suite", Icon: "💻"},
	{ID: "ecommerce", Name: "E-commerce", Vertical: "Ecom Hub", Icon: "🛒"},
	{ID: "content-creation", Name: "Content Creation", Vertical: "Creator Studio", Icon: "🎨"},
	{ID: "digital-marketing", Name: "Digital Marketing", Vertical: "Creator Studio", Icon: "📱"},
	{ID: "saas-tech", Name: "SaaS Technology", Vertical: "Dev Suite", Icon: "☁️"},
	{ID: "ai-ml", Name: "AI/Machine Learning", Vertical: "Dev Suite", Icon: "🤖"},
	{ID: "social-media", Name: "Social Media Management", Vertical: "Creator Studio", Icon: "📲"},
	{ID: "online-retail", Name: "Online Retail", Vertical: "Ecom Hub", Icon: "🏪"},
	{ID: "digital-agencies", Name: "Digital Agencies", Vertical: "Creator Studio", Icon: "🎯"},
	{ID: "automation-tools", Name: "Automation Tools", Vertical: "Dev Suite", Icon: "⚙️"},
	{ID: "marketplace-sellers", Name: "Marketplace Sellers", Vertical: "Ecom Hub", Icon: "🏬"},
	{ID: "edtech", Name: "Educational Technology", Vertical: "Creator Studio", Icon: "📚"},
	{ID: "creative-services", Name: "Creative Services", Vertical: "Creator Studio", Icon: "🎭"},
	{ID: "prompt-engineering", Name: "Prompt Engineering", Vertical: "Dev Suite", Icon: "🔧"},
	{ID: "nocode-platforms", Name: "No-Code Platforms", Vertical: "Dev Suite", Icon: "🔨"},
	{ID: "casino-operations", Name: "Casino Operations", Vertical: "Gaming Hub", Icon: "🎰"},
	{ID: "sports-betting", Name: "Sports Betting", Vertical: "Gaming Hub", Icon: "🏈"},
	{ID: "gaming-security", Name: "Gaming Security & Compliance", Vertical: "Gaming Hub", Icon: "🛡️"},
	{ID: "gaming-marketing", Name: "Gaming Marketing & Analytics", Vertical: "Gaming Hub", Icon: "📊"},
	{ID: "gaming-tech", Name: "Gaming Technology & Platforms", Vertical: "Gaming Hub", Icon: "💾"},
	{ID: "b2b-aiaas", Name: "B2B AI-as-a-Service", Vertical: "AI Suite", Icon: "🤖"},
}

var markets = []Industry{
	{ID: "management-consulting", Name: "Management Consulting", Category: "Professional Services", Icon: "📊"},
	{ID: "financial-services", Name: "Financial Services", Category: "Finance", Icon: "💰"},
	{ID: "healthcare-tech", Name: "Healthcare Technology", Category: "Healthcare", Icon: "🏥"},
	{ID: "real-estate-tech", Name: "Real Estate Technology", Category: "Real Estate", Icon: "🏢"},
	{ID: "legal-tech", Name: "Legal Technology", Category: "Legal", Icon: "⚖️"},
	{ID: "manufacturing", Name: "Manufacturing Operations", Category: "Industrial", Icon: "🏭"},
	{ID: "supply-chain", Name: "Supply Chain Management", Category: "Logistics", Icon: "🚛"},
	{ID: "hr-tech", Name: "Human Resources Technology", Category: "HR", Icon: "👥"},
	{ID: "cybersecurity", Name: "Cybersecurity", Category: "Security", Icon: "🔒"},
	{ID: "data-analytics", Name: "Data Analytics", Category: "Technology", Icon: "📈"},
	{ID: "cloud-infrastructure", Name: "Cloud Infrastructure", Category: "Technology", Icon: "☁️"},
	{ID: "mobile-development", Name: "Mobile App Development", Category: "Technology", Icon: "📱"},
	{ID: "media-entertainment", Name: "Media & Entertainment", Category: "Entertainment", Icon: "🎬"},
	{ID: "non-profit", Name: "Non-Profit Organizations", Category: "Social Impact", Icon: "🤝"},
	{ID: "slot-machine-ops", Name: "Slot Machine Operations", Category: "Gaming Ecosystem", Icon: "🎰"},
	{ID: "table-games-mgmt", Name: "Table Games Management", Category: "Gaming Ecosystem", Icon: "🃏"},
	{ID: "poker-room-ops", Name: "Poker Room Operations", Category: "Gaming Ecosystem", Icon: "♠️"},
	{ID: "esports-betting", Name: "Esports & Virtual Betting", Category: "Gaming Ecosystem", Icon: "🎮"},
	{ID: "lottery-gaming", Name: "Lottery & State Gaming", Category: "Gaming Ecosystem", Icon: "🎫"},
	{ID: "gaming-compliance", Name: "Gaming Regulatory Compliance", Category: "Gaming Ecosystem", Icon: "📋"},
}

// categories are kept in radar sector order.
var categories = []CategoryInfo{
	{Key: CategorySecurity, Label: "Security Vulnerabilities", Color: "#dc2626", Description: "Data protection, access controls, compliance gaps"},
	{Key: CategoryCompliance, Label: "Regulatory Compliance", Color: "#7c3aed", Description: "Industry regulations, data privacy, audit requirements"},
	{Key: CategoryMarket, Label: "Market Intelligence", Color: "#059669", Description: "Competitive landscape, market trends, opportunities"},
	{Key: CategoryTechnical, Label: "Technical Architecture", Color: "#ea580c", Description: "Infrastructure gaps, technical debt, scalability"},
	{Key: CategoryOperational, Label: "Operational Efficiency", Color: "#0284c7", Description: "Process optimization, resource allocation, workflow"},
	{Key: CategoryStrategic, Label: "Strategic Planning", Color: "#7c2d12", Description: "Long-term vision, competitive positioning, innovation"},
	{Key: CategoryFinancial, Label: "Financial Risks", Color: "#059669", Description: "Revenue models, cost optimization, financial planning"},
	{Key: CategoryCustomer, Label: "Customer Experience", Color: "#2563eb", Description: "User satisfaction, retention, support processes"},
	{Key: CategoryGaming, Label: "Gaming Operations", Color: "#9333ea", Description: "House edge, RTP compliance, game integrity, player protection"},
}

// Industries returns the primary industries followed by the expansion markets.
func Industries() []Industry {
	out := make([]Industry, 0, len(industries)+len(markets))
	out = append(out, industries...)
	return append(out, markets...)
}

// IndustryName resolves a display name over both lists.
func IndustryName(id string) (string, bool) {
	for _, in := range industries {
		if in.ID == id {
			return in.Name, true
		}
	}
	for _, m := range markets {
		if m.ID == id {
			return m.Name, true
		}
	}
	return "", false
}

// IndustryIDByName is the reverse of IndustryName.
func IndustryIDByName(name string) (string, bool) {
	for _, in := range Industries() {
		if in.Name == name {
			return in.ID, true
		}
	}
	return "", false
}

// Categories returns the category table in sector order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

func LookupCategory(c Category) (CategoryInfo, bool) {
	for _, info := range categories {
		if info.Key == c {
			return info, true
		}
	}
	return CategoryInfo{}, false
}
