package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePercent 解析百分比字符串为数值（未除100）。
// 去掉空格和尾部 %；含小数逗号时先去掉 . 千分位再把 , 换成小数点。
// 解析失败一律按 0 处理
func ParsePercent(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// ComputeLandedCost 落地成本公式。
// landedIdr = price * (1 + landedCost/100) * (tpl/100) * rate，
// costBearing = landedIdr * bomQty，均保留两位小数。
// 注意 tpl 项是纯乘数而非 1+tpl/100，与 landedCost 项不对称，
// 这是对原系统行为的保留，不要"修正"
func ComputeLandedCost(price, landedCostPct, tplPct, rate, bomQty float64) (landedIdr, costBearing float64) {
	p := decimal.NewFromFloat(price)
	lc := decimal.NewFromFloat(landedCostPct).Div(decimal.NewFromInt(100))
	tpl := decimal.NewFromFloat(tplPct).Div(decimal.NewFromInt(100))
	r := decimal.NewFromFloat(rate)

	landed := p.
		Mul(decimal.NewFromInt(1).Add(lc)).
		Mul(tpl).
		Mul(r).
		Round(2)
	bearing := landed.Mul(decimal.NewFromFloat(bomQty)).Round(2)

	landedIdr, _ = landed.Float64()
	costBearing, _ = bearing.Float64()
	return landedIdr, costBearing
}
