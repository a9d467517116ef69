package main

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/poker-battler/domain/combat"
	"github.com/luca-patrignani/poker-battler/domain/poker"
)

func hpBar(hp, maxHP int) string {
	const width = 20
	if maxHP <= 0 {
		return ""
	}
	filled := max(0, min(width, hp*width/maxHP))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case hp*4 <= maxHP:
		return pterm.LightRed(bar)
	case hp*2 <= maxHP:
		return pterm.LightYellow(bar)
	default:
		return pterm.LightGreen(bar)
	}
}

func printPlayerInfo(p combat.Player, discardsLeft int) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(10).WithTopPadding(1).WithBottomPadding(1)
	items := make([]string, len(p.Inventory))
	for i, it := range p.Inventory {
		items[i] = it.Name
	}
	inventory := pterm.Gray("empty")
	if len(items) > 0 {
		inventory = strings.Join(items, ", ")
	}
	return pbox.WithTitle(pterm.LightCyan("You")).WithTitleTopLeft().Sprintf(
		"HP: %d/%d %s\nGold: %d\nDiscards left: %d\nItems: %s",
		p.HP, p.MaxHP, hpBar(p.HP, p.MaxHP), p.Gold, discardsLeft, inventory)
}

func printEnemyInfo(e combat.Enemy) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	passive := ""
	if e.Passive.Kind != "" {
		passive = pterm.Sprintf("\nPassive: %s %d", e.Passive.Kind, e.Passive.Amount)
	}
	return pbox.WithTitle(pterm.LightRed(e.Name)).WithTitleTopLeft().Sprintf(
		"HP: %d/%d %s\nAttack: %d in %d turns%s",
		e.HP, e.MaxHP, hpBar(e.HP, e.MaxHP), e.AttackDamage, e.CurrentCooldown, passive)
}

func printHandInfo(hand []poker.Card) string {
	sorted := append([]poker.Card(nil), hand...)
	poker.SortDesc(sorted)
	return pterm.BgGreen.Sprint("\n " + poker.FormatCards(sorted) + " \n")
}

func printState(c *combat.Controller, additionalPanel ...pterm.Panel) {
	top := []pterm.Panel{{Data: printPlayerInfo(c.Player(), c.DiscardsLeft())}}
	if e, ok := c.Enemy(); ok {
		top = append(top, pterm.Panel{Data: printEnemyInfo(e)})
	}
	pterm.DefaultSection.Printfln("Level %d of %d", c.Level(), c.Rules().FinalLevel)
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		top,
		{{Data: printHandInfo(c.Hand())}},
		additionalPanel,
	}).Render()
}

func printTurn(res combat.TurnResult) {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	s := res.Score
	var b strings.Builder
	b.WriteString(pterm.Sprintfln("%s: %s", pterm.LightYellow(s.Classification.Category.Title()), poker.FormatCards(s.Classification.Used)))
	b.WriteString(pterm.Sprintfln("%d base + %d cards + %d bonus = %d", s.Base, s.CardValues, s.Total-s.Base-s.CardValues, s.Total))
	b.WriteString(pterm.Sprintfln("You dealt %d damage", res.DamageDealt))
	if res.ThornsDamage > 0 {
		b.WriteString(pterm.Sprintfln("Thorns hit you for %d", res.ThornsDamage))
	}
	if res.EnemyAttack != nil {
		b.WriteString(pterm.Sprintfln("The enemy attacked for %d", res.EnemyAttack.Damage))
	}
	if res.Regenerated > 0 {
		b.WriteString(pterm.Sprintfln("The enemy regenerated %d HP", res.Regenerated))
	}
	if res.EnemyDefeated {
		b.WriteString(pterm.Sprintfln("%s Earned %d gold", pterm.LightGreen("Enemy defeated!"), res.GoldEarned))
	}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{{
		{Data: pbox.WithTitle(pterm.LightYellow("|TURN|")).WithTitleTopCenter().Sprint(b.String())},
	}}).Render()
}

func printShop(c *combat.Controller) {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	var b strings.Builder
	for _, item := range c.ShopStock() {
		b.WriteString(pterm.Sprintfln("%s (%d gold): %s", pterm.LightCyan(item.Name), item.Price, item.Description))
	}
	if b.Len() == 0 {
		b.WriteString("Sold out\n")
	}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{{Data: printPlayerInfo(c.Player(), c.DiscardsLeft())}},
		{{Data: pbox.WithTitle(pterm.LightYellow("|SHOP|")).WithTitleTopCenter().Sprint(b.String())}},
	}).Render()
}

func printOutcome(c *combat.Controller) {
	p := c.Player()
	switch c.State() {
	case combat.Victory:
		pterm.Success.Printfln("You cleared all %d levels with %d HP and %d gold left", c.Rules().FinalLevel, p.HP, p.Gold)
	case combat.GameOver:
		pterm.Error.Printfln("You fell on level %d", c.Level())
	}
}
