package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/poker-battler/domain/combat"
	"github.com/luca-patrignani/poker-battler/domain/poker"
)

type turnAction string

const (
	actPlay    turnAction = "Play a hand"
	actDiscard turnAction = "Discard"
	actHint    turnAction = "Show best hand"
	actSave    turnAction = "Save and quit"
	actQuit    turnAction = "Quit"
)

type shopAction string

const (
	shopBuy   shopAction = "Buy"
	shopSell  shopAction = "Sell"
	shopLeave shopAction = "Leave the shop"
)

// strategy decides what the player does; the game loop applies it.
type strategy interface {
	turn(c *combat.Controller) (turnAction, []poker.Card, error)
	shop(c *combat.Controller) (shopAction, int, error)
}

type game struct {
	ctrl     *combat.Controller
	strat    strategy
	logger   *slog.Logger
	savePath string
}

var errQuit = errors.New("quit")

// run drives the controller until the game ends or the player quits.
func (g game) run() error {
	for !g.ctrl.State().Terminal() {
		var err error
		switch g.ctrl.State() {
		case combat.Init:
			err = g.ctrl.StartEncounter()
		case combat.SelectingHand:
			err = g.turn()
		case combat.ShopVisit:
			err = g.shop()
		default:
			err = fmt.Errorf("unexpected state %s", g.ctrl.State())
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	printOutcome(g.ctrl)
	return nil
}

func (g game) turn() error {
	printState(g.ctrl)
	act, cards, err := g.strat.turn(g.ctrl)
	if err != nil {
		return err
	}
	switch act {
	case actPlay:
		res, err := g.ctrl.SelectHand(cards)
		if errors.Is(err, combat.ErrInvalidSelection) {
			pterm.Error.Println(err.Error())
			return nil
		}
		if err != nil {
			return err
		}
		printTurn(res)
	case actDiscard:
		err := g.ctrl.Discard(cards)
		if errors.Is(err, combat.ErrInvalidSelection) || errors.Is(err, combat.ErrDiscardLimit) {
			pterm.Warning.Println(err.Error())
			return nil
		}
		return err
	case actHint:
		best, score, err := g.ctrl.Suggest()
		if err != nil {
			return err
		}
		pterm.Info.Printfln("Best play: %s, %s for %d", poker.FormatCards(best), poker.DescribeClassification(score.Classification), score.Total)
	case actSave:
		if err := g.save(); err != nil {
			return err
		}
		return errQuit
	case actQuit:
		return errQuit
	}
	return nil
}

func (g game) shop() error {
	printShop(g.ctrl)
	act, i, err := g.strat.shop(g.ctrl)
	if err != nil {
		return err
	}
	switch act {
	case shopBuy:
		err := g.ctrl.BuyItem(i)
		if errors.Is(err, combat.ErrNotEnoughGold) || errors.Is(err, combat.ErrInventoryFull) || errors.Is(err, combat.ErrNoSuchItem) {
			pterm.Warning.Println(err.Error())
			return nil
		}
		return err
	case shopSell:
		gain, err := g.ctrl.SellItem(i)
		if errors.Is(err, combat.ErrNoSuchItem) {
			pterm.Warning.Println(err.Error())
			return nil
		}
		if err != nil {
			return err
		}
		pterm.Info.Printfln("Sold for %d gold", gain)
	case shopLeave:
		return g.ctrl.LeaveShop()
	}
	return nil
}

func (g game) save() error {
	data, err := json.MarshalIndent(g.ctrl.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.savePath, data, 0o644); err != nil {
		return err
	}
	g.logger.Info("game saved", slog.String("path", g.savePath))
	return nil
}

// autopilot always plays the best hand and buys the first item it can afford.
type autopilot struct{}

func (autopilot) turn(c *combat.Controller) (turnAction, []poker.Card, error) {
	best, _, err := c.Suggest()
	if err != nil {
		return "", nil, err
	}
	return actPlay, best, nil
}

func (autopilot) shop(c *combat.Controller) (shopAction, int, error) {
	p := c.Player()
	if len(p.Inventory) < p.InventoryCap {
		for i, item := range c.ShopStock() {
			if item.Price <= p.Gold {
				return shopBuy, i, nil
			}
		}
	}
	return shopLeave, 0, nil
}

// interactive asks the user through pterm prompts.
type interactive struct{}

func (interactive) turn(c *combat.Controller) (turnAction, []poker.Card, error) {
	actions := []string{string(actPlay), string(actHint)}
	if c.DiscardsLeft() > 0 {
		actions = append(actions, string(actDiscard))
	}
	actions = append(actions, string(actSave), string(actQuit))

	selected, err := pterm.DefaultInteractiveSelect.WithDefaultText("Select your next action").WithOptions(actions).Show()
	if err != nil {
		return "", nil, err
	}
	act := turnAction(selected)
	switch act {
	case actPlay:
		cards, err := pickCards(c.Hand(), fmt.Sprintf("Pick exactly %d cards", poker.HandSize))
		return act, cards, err
	case actDiscard:
		cards, err := pickCards(c.Hand(), fmt.Sprintf("Pick up to %d cards to discard (%d discards left)", poker.HandSize, c.DiscardsLeft()))
		return act, cards, err
	}
	return act, nil, nil
}

func pickCards(hand []poker.Card, prompt string) ([]poker.Card, error) {
	byLabel := make(map[string]poker.Card, len(hand))
	labels := make([]string, len(hand))
	for i, card := range hand {
		labels[i] = card.String()
		byLabel[labels[i]] = card
	}
	picked, err := pterm.DefaultInteractiveMultiselect.
		WithDefaultText(prompt).
		WithOptions(labels).
		WithMaxHeight(len(labels)).
		Show()
	if err != nil {
		return nil, err
	}
	cards := make([]poker.Card, 0, len(picked))
	for _, label := range picked {
		cards = append(cards, byLabel[label])
	}
	return cards, nil
}

func (interactive) shop(c *combat.Controller) (shopAction, int, error) {
	options := []string{string(shopLeave)}
	stock := c.ShopStock()
	for i, item := range stock {
		options = append(options, fmt.Sprintf("%s %d: %s (%d gold)", shopBuy, i+1, item.Name, item.Price))
	}
	inventory := c.Player().Inventory
	for i, item := range inventory {
		options = append(options, fmt.Sprintf("%s %d: %s (+%d gold)", shopSell, i+1, item.Name, item.SellPrice()))
	}
	selected, err := pterm.DefaultInteractiveSelect.WithDefaultText("What do you want to do?").WithOptions(options).Show()
	if err != nil {
		return "", 0, err
	}
	i := slices.Index(options, selected) - 1
	switch {
	case i < 0:
		return shopLeave, 0, nil
	case i < len(stock):
		return shopBuy, i, nil
	default:
		return shopSell, i - len(stock), nil
	}
}
