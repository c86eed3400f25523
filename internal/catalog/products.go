package catalog

import "github.com/teconavi/alitaramdemo2/internal/domain"

func defaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:               "p1",
			Name:             "Titanium Ergo Walker Pro",
			Category:         "Mobility Aid",
			PriceRef:         450,
			ImageURL:         "https://images.unsplash.com/photo-1584515933487-779824d29309?q=80&w=1000&auto=format&fit=crop",
			ShortDescription: "Ultra-lightweight titanium frame designed for post-operative recovery and maximum stability.",
			ClinicalSummary:  "Clinically recommended for patients < 8 weeks post-TKA (Total Knee Arthroplasty). Reduces wrist strain by 40% compared to standard aluminum models. Features shock-absorbing flex frame.",
			Badges:           []string{"Titanium", "Foldable", "Shock-Absorb"},
			Specs: []domain.Spec{
				{Key: "Weight", Value: "2.1kg"},
				{Key: "Max Load", Value: "150kg"},
				{Key: "Grip", Value: "Ergo-Form"},
				{Key: "Wheels", Value: "6\" All-Terrain"},
			},
		},
		{
			ID:               "p2",
			Name:             "HydroLift Smart Bath Chair",
			Category:         "Bathroom Safety",
			PriceRef:         1200,
			ImageURL:         "https://images.unsplash.com/photo-1584622650111-993a426fbf0a?q=80&w=1000&auto=format&fit=crop",
			ShortDescription: "Automated hydraulic lift system for safe, independent bathtub entry and exit.",
			ClinicalSummary:  "Essential for fall prevention in high-risk wet environments. Zero-effort hydraulic assist allows seated transfer without caregiver strain. Anti-slip textural seating surface.",
			Badges:           []string{"Hydraulic", "Waterproof IP68", "Swivel Seat"},
			Specs: []domain.Spec{
				{Key: "Seat Width", Value: "45cm"},
				{Key: "Lift Mechanism", Value: "Hydraulic"},
				{Key: "Battery", Value: "Rechargeable"},
				{Key: "Install", Value: "Tool-free"},
			},
		},
		{
			ID:               "p3",
			Name:             "NeuroStep Gait Stabilizer",
			Category:         "Rehab Robotics",
			PriceRef:         890,
			ImageURL:         "https://images.unsplash.com/photo-1555664424-778a1e5e1b48?q=80&w=1000&auto=format&fit=crop",
			ShortDescription: "Active feedback wearable that corrects foot drop and stabilizes gait patterns after stroke.",
			ClinicalSummary:  "Uses functional electrical stimulation (FES) to lift the foot at the correct phase of walking. Proven to improve walking speed by 25% in post-stroke patients.",
			Badges:           []string{"AI Sensor", "Gait Correction", "Bluetooth"},
			Specs: []domain.Spec{
				{Key: "Battery Life", Value: "24 Hours"},
				{Key: "Response Time", Value: "<10ms"},
				{Key: "Weight", Value: "350g"},
				{Key: "Size", Value: "Universal Adjustable"},
			},
		},
		{
			ID:               "p4",
			Name:             "CloudRest Zero-G Lift Chair",
			Category:         "Home Comfort",
			PriceRef:         2400,
			ImageURL:         "https://images.unsplash.com/photo-1560184897-ae75f418493e?q=80&w=1000&auto=format&fit=crop",
			ShortDescription: "Medical-grade recliner with dual-motor lift assist and zero-gravity positioning.",
			ClinicalSummary:  "Reduces lower back pressure and edema. The vertical lift function assists patients with limited core strength to stand safely without knee strain.",
			Badges:           []string{"Dual Motor", "Zero-Gravity", "Heat Therapy"},
			Specs: []domain.Spec{
				{Key: "Fabric", Value: "Anti-microbial Weave"},
				{Key: "Recline Angle", Value: "165°"},
				{Key: "Motors", Value: "Heavy Duty Dual"},
				{Key: "Warranty", Value: "5 Years"},
			},
		},
		{
			ID:               "p5",
			Name:             "SwiftGlider 4-Wheel Scooter",
			Category:         "Outdoor Mobility",
			PriceRef:         3200,
			ImageURL:         "https://plus.unsplash.com/premium_photo-1664302152996-037785c49080?q=80&w=1932&auto=format&fit=crop",
			ShortDescription: "All-terrain mobility scooter with long-range battery and full suspension system.",
			ClinicalSummary:  "Ideal for users with limited walking endurance (COPD, CHF) who wish to maintain community independence. Features a tight turning radius for indoor/outdoor versatility.",
			Badges:           []string{"40km Range", "Full Suspension", "LED Lights"},
			Specs: []domain.Spec{
				{Key: "Speed", Value: "15km/h"},
				{Key: "Range", Value: "40km"},
				{Key: "Capacity", Value: "160kg"},
				{Key: "Tires", Value: "Pneumatic"},
			},
		},
		{
			ID:               "p6",
			Name:             "TheraSleep Adjustable Bed",
			Category:         "Bedroom Safety",
			PriceRef:         1850,
			ImageURL:         "https://images.unsplash.com/photo-1505693416388-b0346efee535?q=80&w=2070&auto=format&fit=crop",
			ShortDescription: "Hospital-grade functionality with a home-style aesthetic. Wireless remote control.",
			ClinicalSummary:  "Elevates head/feet to improve circulation and reduce acid reflux/snoring. Hi-Lo function assists with safe transfers in and out of bed for fall prevention.",
			Badges:           []string{"Hi-Lo Lift", "Massage", "Under-light"},
			Specs: []domain.Spec{
				{Key: "Size", Value: "Twin XL / Queen"},
				{Key: "Motor", Value: "Whisper Quiet"},
				{Key: "Height", Value: "Adjustable 10-30\""},
				{Key: "Remote", Value: "Wireless"},
			},
		},
		{
			ID:               "p7",
			Name:             "OxyFlow Portable Conc.",
			Category:         "Respiratory",
			PriceRef:         2100,
			ImageURL:         "https://images.unsplash.com/photo-1631541909061-71e349d1f241?q=80&w=1973&auto=format&fit=crop",
			ShortDescription: "Lightweight portable oxygen concentrator with pulse-dose technology.",
			ClinicalSummary:  "Provides medical-grade oxygen on the go. Pulse-dose delivery extends battery life up to 8 hours. FAA approved for air travel.",
			Badges:           []string{"2.2kg", "FAA Approved", "8hr Battery"},
			Specs: []domain.Spec{
				{Key: "Flow", Value: "1-5L Pulse"},
				{Key: "Noise", Value: "<40dB"},
				{Key: "Screen", Value: "LCD Touch"},
				{Key: "Charging", Value: "AC/DC/Car"},
			},
		},
		{
			ID:               "p8",
			Name:             "EzAccess Modular Ramp",
			Category:         "Accessibility",
			PriceRef:         600,
			ImageURL:         "https://images.unsplash.com/photo-1622394208003-827827807218?q=80&w=2004&auto=format&fit=crop",
			ShortDescription: "Customizable aluminum modular ramp system for home entryways.",
			ClinicalSummary:  "Essential for wheelchair/scooter access. High-traction surface prevents slips in Canadian winters. Modular design allows fitting to any staircase configuration.",
			Badges:           []string{"Aluminum", "High-Traction", "Modular"},
			Specs: []domain.Spec{
				{Key: "Material", Value: "Aircraft Alum."},
				{Key: "Width", Value: "36 inches"},
				{Key: "Load", Value: "400kg"},
				{Key: "Install", Value: "Within 2 hours"},
			},
		},
	}
}
