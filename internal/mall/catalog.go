package mall

// Category groups products.
type Category string

const (
	CategoryMedicine  Category = "약품"
	CategoryEquipment Category = "장비"
	CategoryService   Category = "서비스"
)

// Product is a welfare mall listing. Prices are in welfare points.
type Product struct {
	ID          int
	Category    Category
	Name        string
	Price       int
	Tag         string
	Description string
	Stock       int
	Restricted  bool
}

// Catalog is the public mall.
var Catalog = []Product{
	{1, CategoryMedicine, "탈모약", 100, "BEST", "한 번만 발라도 모근이 되살아나는 기적의 발모제", 5, false},
	{3, CategoryMedicine, "미공개 시약", 1000, "NEW", "임직원만 구매 가능한 미공개 시약 (주의 : 시약의 효능은 사용자의 특성에 따라 다릅니다.)", 2, true},
	{4, CategoryMedicine, "독(사막방울뱀)", 170000, "", "치명적인 독성을 가진 사막방울뱀의 독", 10, true},
	{5, CategoryMedicine, "소원권", 500000, "", "정확한 방식을 사용한다면 복용자의 소원을 들어주는 약물", 1, false},
	{6, CategoryMedicine, "재생 물약(C)", 10000, "", "모든 외상적 결손을 재생", 78, false},
	{7, CategoryMedicine, "재생 물약(D)", 5000, "", "일부 외상적 결손을 재생", 26, false},
	{8, CategoryEquipment, "최고급 대형 가전", 500, "", "세탁기, 냉장고 등 대형 가전이 랜덤 포함", 97, false},
	{9, CategoryEquipment, "소음 차단 헤드셋", 1000, "", "산업용 소음뿐만 아니라 비가청 주파수의 '속삭임'을 효과적으로 차단", 109, false},
	{10, CategoryEquipment, "고광량 전술 라이트", 200, "", "육안으로 보이지 않는 혈흔이나 어둠의 잔재를 식별할 수 있는 자외선 모드 지원", 214, false},
	{11, CategoryEquipment, "특수 격리용 알루미늄 케이스", 2000, "BEST", "D등급 이하의 오염물이나 아티팩트를 안전하게 운반 가능 (주의: 살아있는 생물체를 넣고 잠그지 마십시오.)", 37, false},
	{12, CategoryEquipment, "비상용 신호탄 세트", 600, "", "통신이 두절된 '균열' 내부나 격리 구역에서 외부로 신호를 보낼 때 사용. 적색은 \"구조 요청\", 녹색은 \"진입 금지(전원 사망)\"을 의미", 9, false},
	{13, CategoryService, "구내 식당 프리미엄 식권", 200, "", "줄 서지 않고 바로 입장 가능한 프리미엄 식권", 75, false},
}

// ByCategory filters the catalog. An empty category returns everything.
func ByCategory(c Category) []Product {
	if c == "" {
		return append([]Product(nil), Catalog...)
	}
	var out []Product
	for _, p := range Catalog {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}
