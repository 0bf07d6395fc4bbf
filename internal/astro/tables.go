package astro

// ZodiacSigns in order starting at 0 degrees Aries
var ZodiacSigns = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Planets tracked by the pipeline (the nine grahas)
var Planets = []string{
	"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu",
}

// NakshatraDetails holds the fixed symbolic attributes of one lunar mansion
type NakshatraDetails struct {
	Name        string
	Index       int
	Lord        string
	Deity       string
	Symbol      string
	StartDegree float64
	EndDegree   float64
	Sign        string
	Nature      string
	Gana        string
	Quality     string
}

// NakshatraSpan is the width of one nakshatra in degrees (13°20′)
const NakshatraSpan = 360.0 / 27.0

// PadaSpan is the width of one pada in degrees (3°20′)
const PadaSpan = NakshatraSpan / 4.0

// Nakshatras is the fixed table of 27 lunar mansions
var Nakshatras = []NakshatraDetails{
	{Name: "Ashwini", Index: 0, Lord: "Ketu", Deity: "Ashwini Kumaras", Symbol: "Horse Head", StartDegree: 0, EndDegree: 13.333333, Sign: "Aries", Nature: "Light/Swift", Gana: "Deva (Divine)", Quality: "Healing, swift action, beginnings"},
	{Name: "Bharani", Index: 1, Lord: "Venus", Deity: "Yama", Symbol: "Yoni (Female organ)", StartDegree: 13.333333, EndDegree: 26.666667, Sign: "Aries", Nature: "Fierce", Gana: "Manushya (Human)", Quality: "Transformation, restraint, nurturing"},
	{Name: "Krittika", Index: 2, Lord: "Sun", Deity: "Agni", Symbol: "Razor/Flame", StartDegree: 26.666667, EndDegree: 40, Sign: "Aries/Taurus", Nature: "Sharp/Mixed", Gana: "Rakshasa (Demon)", Quality: "Cutting, purification, sharpness"},
	{Name: "Rohini", Index: 3, Lord: "Moon", Deity: "Brahma", Symbol: "Chariot/Cart", StartDegree: 40, EndDegree: 53.333333, Sign: "Taurus", Nature: "Fixed", Gana: "Manushya (Human)", Quality: "Growth, beauty, fertility"},
	{Name: "Mrigashira", Index: 4, Lord: "Mars", Deity: "Soma", Symbol: "Deer Head", StartDegree: 53.333333, EndDegree: 66.666667, Sign: "Taurus/Gemini", Nature: "Soft/Tender", Gana: "Deva (Divine)", Quality: "Searching, curiosity, gentleness"},
	{Name: "Ardra", Index: 5, Lord: "Rahu", Deity: "Rudra", Symbol: "Teardrop/Diamond", StartDegree: 66.666667, EndDegree: 80, Sign: "Gemini", Nature: "Sharp", Gana: "Manushya (Human)", Quality: "Destruction, transformation, storms"},
	{Name: "Punarvasu", Index: 6, Lord: "Jupiter", Deity: "Aditi", Symbol: "Bow and Quiver", StartDegree: 80, EndDegree: 93.333333, Sign: "Gemini/Cancer", Nature: "Movable", Gana: "Deva (Divine)", Quality: "Renewal, return, abundance"},
	{Name: "Pushya", Index: 7, Lord: "Saturn", Deity: "Brihaspati", Symbol: "Cow Udder/Lotus", StartDegree: 93.333333, EndDegree: 106.666667, Sign: "Cancer", Nature: "Light", Gana: "Deva (Divine)", Quality: "Nourishment, spirituality, auspiciousness"},
	{Name: "Ashlesha", Index: 8, Lord: "Mercury", Deity: "Nagas (Serpents)", Symbol: "Coiled Serpent", StartDegree: 106.666667, EndDegree: 120, Sign: "Cancer", Nature: "Sharp", Gana: "Rakshasa (Demon)", Quality: "Clinging, wisdom, kundalini"},
	{Name: "Magha", Index: 9, Lord: "Ketu", Deity: "Pitris (Ancestors)", Symbol: "Royal Throne", StartDegree: 120, EndDegree: 133.333333, Sign: "Leo", Nature: "Fierce", Gana: "Rakshasa (Demon)", Quality: "Authority, tradition, ancestral power"},
	{Name: "Purva Phalguni", Index: 10, Lord: "Venus", Deity: "Bhaga", Symbol: "Front Legs of Bed", StartDegree: 133.333333, EndDegree: 146.666667, Sign: "Leo", Nature: "Fierce", Gana: "Manushya (Human)", Quality: "Pleasure, creativity, procreation"},
	{Name: "Uttara Phalguni", Index: 11, Lord: "Sun", Deity: "Aryaman", Symbol: "Back Legs of Bed", StartDegree: 146.666667, EndDegree: 160, Sign: "Leo/Virgo", Nature: "Fixed", Gana: "Manushya (Human)", Quality: "Patronage, friendship, contracts"},
	{Name: "Hasta", Index: 12, Lord: "Moon", Deity: "Savitar", Symbol: "Hand/Palm", StartDegree: 160, EndDegree: 173.333333, Sign: "Virgo", Nature: "Light", Gana: "Deva (Divine)", Quality: "Skill, craftsmanship, dexterity"},
	{Name: "Chitra", Index: 13, Lord: "Mars", Deity: "Tvashtar", Symbol: "Bright Jewel/Pearl", StartDegree: 173.333333, EndDegree: 186.666667, Sign: "Virgo/Libra", Nature: "Soft", Gana: "Rakshasa (Demon)", Quality: "Beauty, artistry, illusion"},
	{Name: "Swati", Index: 14, Lord: "Rahu", Deity: "Vayu", Symbol: "Young Sprout/Coral", StartDegree: 186.666667, EndDegree: 200, Sign: "Libra", Nature: "Movable", Gana: "Deva (Divine)", Quality: "Independence, flexibility, trade"},
	{Name: "Vishakha", Index: 15, Lord: "Jupiter", Deity: "Indra-Agni", Symbol: "Triumphal Arch", StartDegree: 200, EndDegree: 213.333333, Sign: "Libra/Scorpio", Nature: "Sharp", Gana: "Rakshasa (Demon)", Quality: "Goal-oriented, determination, achievement"},
	{Name: "Anuradha", Index: 16, Lord: "Saturn", Deity: "Mitra", Symbol: "Lotus/Staff", StartDegree: 213.333333, EndDegree: 226.666667, Sign: "Scorpio", Nature: "Soft", Gana: "Deva (Divine)", Quality: "Friendship, devotion, balance"},
	{Name: "Jyeshtha", Index: 17, Lord: "Mercury", Deity: "Indra", Symbol: "Circular Amulet/Umbrella", StartDegree: 226.666667, EndDegree: 240, Sign: "Scorpio", Nature: "Sharp", Gana: "Rakshasa (Demon)", Quality: "Seniority, protection, responsibility"},
	{Name: "Mula", Index: 18, Lord: "Ketu", Deity: "Nirriti", Symbol: "Bundle of Roots", StartDegree: 240, EndDegree: 253.333333, Sign: "Sagittarius", Nature: "Sharp", Gana: "Rakshasa (Demon)", Quality: "Foundation, investigation, destruction"},
	{Name: "Purva Ashadha", Index: 19, Lord: "Venus", Deity: "Apas", Symbol: "Elephant Tusk/Fan", StartDegree: 253.333333, EndDegree: 266.666667, Sign: "Sagittarius", Nature: "Fierce", Gana: "Manushya (Human)", Quality: "Invincibility, purification, victory"},
	{Name: "Uttara Ashadha", Index: 20, Lord: "Sun", Deity: "Vishvadevas", Symbol: "Elephant Tusk/Planks", StartDegree: 266.666667, EndDegree: 280, Sign: "Sagittarius/Capricorn", Nature: "Fixed", Gana: "Manushya (Human)", Quality: "Final victory, permanence, leadership"},
	{Name: "Shravana", Index: 21, Lord: "Moon", Deity: "Vishnu", Symbol: "Three Footprints/Ear", StartDegree: 280, EndDegree: 293.333333, Sign: "Capricorn", Nature: "Movable", Gana: "Deva (Divine)", Quality: "Listening, learning, connection"},
	{Name: "Dhanishta", Index: 22, Lord: "Mars", Deity: "Eight Vasus", Symbol: "Drum/Flute", StartDegree: 293.333333, EndDegree: 306.666667, Sign: "Capricorn/Aquarius", Nature: "Movable", Gana: "Rakshasa (Demon)", Quality: "Wealth, music, adaptability"},
	{Name: "Shatabhisha", Index: 23, Lord: "Rahu", Deity: "Varuna", Symbol: "Empty Circle/1000 Flowers", StartDegree: 306.666667, EndDegree: 320, Sign: "Aquarius", Nature: "Movable", Gana: "Rakshasa (Demon)", Quality: "Healing, secrecy, mysticism"},
	{Name: "Purva Bhadrapada", Index: 24, Lord: "Jupiter", Deity: "Aja Ekapada", Symbol: "Front Legs of Funeral Cot", StartDegree: 320, EndDegree: 333.333333, Sign: "Aquarius/Pisces", Nature: "Fierce", Gana: "Manushya (Human)", Quality: "Transformation, intensity, duality"},
	{Name: "Uttara Bhadrapada", Index: 25, Lord: "Saturn", Deity: "Ahir Budhnya", Symbol: "Back Legs of Funeral Cot", StartDegree: 333.333333, EndDegree: 346.666667, Sign: "Pisces", Nature: "Fixed", Gana: "Manushya (Human)", Quality: "Depth, wisdom, kundalini"},
	{Name: "Revati", Index: 26, Lord: "Mercury", Deity: "Pushan", Symbol: "Fish/Drum", StartDegree: 346.666667, EndDegree: 360, Sign: "Pisces", Nature: "Soft", Gana: "Deva (Divine)", Quality: "Nourishment, journey, completion"},
}

// DashaSequence is the fixed cyclic order of Vimshottari rulers
var DashaSequence = []string{
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
}

// DashaPeriodYears maps each ruler to its fixed period length.
// The nine periods total 120 years per full cycle.
var DashaPeriodYears = map[string]float64{
	"Ketu":    7,
	"Venus":   20,
	"Sun":     6,
	"Moon":    10,
	"Mars":    7,
	"Rahu":    18,
	"Jupiter": 16,
	"Saturn":  19,
	"Mercury": 17,
}
